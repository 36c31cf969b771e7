package sqlite

// dogsSchema must stay byte-compatible with databases created by the
// mobile app: same table name, column names and order, AUTOINCREMENT ids.
const dogsSchema = `
CREATE TABLE IF NOT EXISTS dogs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  feedingTime TEXT
);
`

// migrationsSchema tracks which schema version wrote the file.
const migrationsSchema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`

const (
	insertDogSQL = `INSERT INTO dogs (name, feedingTime) VALUES (?, ?);`
	listDogsSQL  = `SELECT id, name, feedingTime FROM dogs ORDER BY id ASC;`
	updateDogSQL = `UPDATE dogs SET name = ?, feedingTime = ? WHERE id = ?;`
	deleteDogSQL = `DELETE FROM dogs WHERE id = ?;`
)
