package db

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS shifts (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name          TEXT NOT NULL,
    role          TEXT NOT NULL CHECK (role IN ('manager', 'supervisor', 'night_supervisor', 'storekeeper')),
    region        TEXT NOT NULL DEFAULT '',
    shift_id      INTEGER REFERENCES shifts(id),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS inventory (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    category     TEXT NOT NULL,
    location     TEXT NOT NULL,
    quantity     INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    unit         TEXT NOT NULL,
    status       TEXT NOT NULL DEFAULT 'Available',
    last_updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (name, location)
);

CREATE TABLE IF NOT EXISTS stock_logs (
    id            INTEGER PRIMARY KEY,
    action_by     TEXT NOT NULL,
    action_kind   TEXT NOT NULL CHECK (action_kind IN ('issued', 'transfer_out', 'transfer_in', 'manual_adjust')),
    counterparty  TEXT NOT NULL DEFAULT '',
    item_name     TEXT NOT NULL,
    location      TEXT NOT NULL,
    change_amount INTEGER NOT NULL,
    new_quantity  INTEGER NOT NULL,
    unit          TEXT NOT NULL,
    log_date      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS requests (
    req_id          INTEGER PRIMARY KEY,
    supervisor_name TEXT NOT NULL,
    region          TEXT NOT NULL DEFAULT '',
    item_name       TEXT NOT NULL,
    category        TEXT NOT NULL,
    quantity        INTEGER NOT NULL CHECK (quantity > 0),
    unit            TEXT NOT NULL,
    status          TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Approved', 'Rejected', 'Issued')),
    request_date    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    notes           TEXT
);

CREATE TABLE IF NOT EXISTS workers (
    id       INTEGER PRIMARY KEY,
    name     TEXT NOT NULL,
    emp_id   TEXT NOT NULL UNIQUE,
    role     TEXT NOT NULL DEFAULT '',
    region   TEXT NOT NULL DEFAULT '',
    shift_id INTEGER REFERENCES shifts(id),
    status   TEXT NOT NULL DEFAULT 'Active'
);

CREATE TABLE IF NOT EXISTS attendance (
    id         INTEGER PRIMARY KEY,
    worker_id  INTEGER NOT NULL REFERENCES workers(id),
    date       TEXT NOT NULL,
    shift_id   INTEGER NOT NULL REFERENCES shifts(id),
    status     TEXT NOT NULL,
    notes      TEXT,
    supervisor TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attendance_date_shift
    ON attendance(date, shift_id);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
