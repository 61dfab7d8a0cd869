package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateUsers creates the users table if it does not exist.
func AutoMigrateUsers(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			UNIQUE KEY email_idx (email)
		);
	`
	return execWithRetry(query, retries, db)
}

// AutoMigrateOrders creates the orders table on every shard if it does not
// exist.
func AutoMigrateOrders(retries int, dbs ...*sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			total_price DOUBLE NOT NULL,
			status VARCHAR(20) NOT NULL,
			order_date DATETIME NOT NULL,
			KEY user_id_idx (user_id)
		);
	`
	return execWithRetry(query, retries, dbs...)
}

func execWithRetry(query string, retries int, dbs ...*sql.DB) error {
	for _, db := range dbs {
		_, err := db.Exec(query)
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
