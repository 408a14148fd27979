package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"
)

type CompanyRepo struct {
	DB *sql.DB
}

func (r CompanyRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const companyColumns = `id, name, logo, COALESCE(description, ''), phone_number, email, address, is_active, is_hidden`

func scanCompany(row interface{ Scan(...any) error }) (models.BusCompany, error) {
	var c models.BusCompany
	err := row.Scan(&c.ID, &c.Name, &c.Logo, &c.Description, &c.PhoneNumber,
		&c.Email, &c.Address, &c.IsActive, &c.IsHidden)
	return c, err
}

// List returns active companies; hidden ones only when includeHidden is set
// (admin view).
func (r CompanyRepo) List(includeHidden bool) ([]models.BusCompany, error) {
	query := `SELECT ` + companyColumns + ` FROM bus_companies WHERE is_active = 1`
	if !includeHidden {
		query += ` AND is_hidden = 0`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusCompany{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CompanyRepo) GetByID(id int64) (models.BusCompany, error) {
	c, err := scanCompany(r.db().QueryRow(`
		SELECT `+companyColumns+` FROM bus_companies WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.BusCompany{}, domain.NotFoundError{Resource: "company"}
	}
	return c, err
}

func (r CompanyRepo) Insert(c models.BusCompany) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bus_companies (name, logo, description, phone_number, email, address)
		VALUES (?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(c.Name), c.Logo, c.Description, c.PhoneNumber, c.Email, c.Address)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CompanyRepo) Update(id int64, c models.BusCompany) error {
	res, err := r.db().Exec(`
		UPDATE bus_companies
		SET name=?, logo=?, description=?, phone_number=?, email=?, address=?, updated_at=NOW()
		WHERE id=?`,
		strings.TrimSpace(c.Name), c.Logo, c.Description, c.PhoneNumber, c.Email, c.Address, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r CompanyRepo) SetHidden(id int64, hidden bool) error {
	_, err := r.db().Exec(`UPDATE bus_companies SET is_hidden=?, updated_at=NOW() WHERE id=?`, hidden, id)
	return err
}

func (r CompanyRepo) Deactivate(id int64) error {
	_, err := r.db().Exec(`UPDATE bus_companies SET is_active=0, updated_at=NOW() WHERE id=?`, id)
	return err
}

func (r CompanyRepo) CountActive() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM bus_companies WHERE is_active=1`).Scan(&n)
	return n, err
}

// GetBus loads one bus, used when scheduling trips.
func (r CompanyRepo) GetBus(id int64) (models.Bus, error) {
	var b models.Bus
	err := r.db().QueryRow(`
		SELECT id, bus_company_id, license_plate, bus_type, total_seats, is_active
		FROM buses WHERE id = ? LIMIT 1`, id).
		Scan(&b.ID, &b.BusCompanyID, &b.LicensePlate, &b.BusType, &b.TotalSeats, &b.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bus{}, domain.NotFoundError{Resource: "bus"}
	}
	return b, err
}
