package config

import (
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_name VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	full_name VARCHAR(255) NOT NULL DEFAULT '',
	phone_number VARCHAR(50) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	avatar VARCHAR(500) NOT NULL DEFAULT '',
	role VARCHAR(20) NOT NULL DEFAULT 'User',
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_users_email (email),
	UNIQUE KEY uniq_users_user_name (user_name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bus_companies (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	logo VARCHAR(500) NOT NULL DEFAULT '',
	description TEXT,
	phone_number VARCHAR(50) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL DEFAULT '',
	address VARCHAR(500) NOT NULL DEFAULT '',
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	is_hidden TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_company_id BIGINT NOT NULL,
	license_plate VARCHAR(50) NOT NULL,
	bus_type VARCHAR(50) NOT NULL DEFAULT 'Limousine',
	total_seats INT NOT NULL,
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_buses_company (bus_company_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bus_seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	seat_number VARCHAR(10) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_bus_seat (bus_id, seat_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS trips (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	bus_company_id BIGINT NOT NULL,
	departure_city VARCHAR(100) NOT NULL,
	arrival_city VARCHAR(100) NOT NULL,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	price BIGINT NOT NULL,
	total_seats INT NOT NULL,
	booked_seats INT NOT NULL DEFAULT 0,
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	is_hidden TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_trips_route_date (departure_city, arrival_city, departure_time),
	KEY idx_trips_company (bus_company_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS trip_seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_id BIGINT NOT NULL,
	seat_number VARCHAR(10) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'Available',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_trip_seat (trip_id, seat_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS tickets (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	trip_id BIGINT NOT NULL,
	ticket_number VARCHAR(30) NOT NULL,
	qr_code VARCHAR(255) NOT NULL,
	number_of_seats INT NOT NULL,
	total_price BIGINT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'Pending',
	booking_date DATETIME NOT NULL,
	payment_date DATETIME NULL,
	boarding_date DATETIME NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_ticket_number (ticket_number),
	KEY idx_tickets_user (user_id),
	KEY idx_tickets_trip (trip_id),
	KEY idx_tickets_qr (qr_code)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS ticket_seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	ticket_id BIGINT NOT NULL,
	trip_seat_id BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_ticket_seat (ticket_id, trip_seat_id),
	KEY idx_ticket_seats_seat (trip_seat_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates missing tables at startup.
func EnsureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedDemoData inserts a demo company, bus, seat layout, a couple of trips
// and the admin/manager accounts when the database is empty.
func SeedDemoData(db *sql.DB) error {
	var companies int
	if err := db.QueryRow(`SELECT COUNT(*) FROM bus_companies`).Scan(&companies); err != nil {
		return err
	}
	if companies > 0 {
		return nil
	}

	res, err := db.Exec(`INSERT INTO bus_companies (name, description, phone_number, email, address)
		VALUES ('SmartRide Express', 'Tuyến xe limousine Hà Nội - Hải Phòng', '1900-6067', 'contact@smartride.vn', 'Hà Nội')`)
	if err != nil {
		return err
	}
	companyID, _ := res.LastInsertId()

	res, err = db.Exec(`INSERT INTO buses (bus_company_id, license_plate, bus_type, total_seats)
		VALUES (?, '29B-123.45', 'Limousine', 28)`, companyID)
	if err != nil {
		return err
	}
	busID, _ := res.LastInsertId()

	for row := 0; row < 4; row++ {
		for n := 1; n <= 7; n++ {
			code := fmt.Sprintf("%c%02d", 'A'+row, n)
			if _, err := db.Exec(`INSERT INTO bus_seats (bus_id, seat_number) VALUES (?, ?)`, busID, code); err != nil {
				return err
			}
		}
	}

	trips := []struct {
		from, to string
		dep, arr string
		price    int64
	}{
		{"Hà Nội", "Hải Phòng", "2026-09-01 07:00:00", "2026-09-01 09:30:00", 150000},
		{"Hải Phòng", "Hà Nội", "2026-09-01 15:00:00", "2026-09-01 17:30:00", 150000},
	}
	for _, t := range trips {
		res, err = db.Exec(`INSERT INTO trips (bus_id, bus_company_id, departure_city, arrival_city, departure_time, arrival_time, price, total_seats)
			VALUES (?, ?, ?, ?, ?, ?, ?, 28)`, busID, companyID, t.from, t.to, t.dep, t.arr, t.price)
		if err != nil {
			return err
		}
		tripID, _ := res.LastInsertId()
		if _, err := db.Exec(`INSERT INTO trip_seats (trip_id, seat_number)
			SELECT ?, seat_number FROM bus_seats WHERE bus_id=? ORDER BY seat_number`, tripID, busID); err != nil {
			return err
		}
	}

	for _, u := range []struct{ name, email, role, password string }{
		{"admin", "admin@smartride.vn", "Admin", "Admin@123"},
		{"manager", "manager@smartride.vn", "Manager", "Manager@123"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := db.Exec(`INSERT INTO users (user_name, email, full_name, password_hash, role)
			VALUES (?, ?, ?, ?, ?)`, u.name, u.email, u.name, string(hash), u.role); err != nil {
			return err
		}
	}

	log.Println("seeded demo data")
	return nil
}
