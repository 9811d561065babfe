package store

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL DEFAULT '',
	setup TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	session TEXT NOT NULL DEFAULT '',
	timeframe TEXT NOT NULL DEFAULT '',
	grade TEXT NOT NULL DEFAULT '',
	entry REAL,
	sl REAL,
	tp REAL,
	exit REAL,
	capital REAL,
	rr REAL,
	profit REAL,
	profit_pct REAL,
	mistakes TEXT NOT NULL DEFAULT '[]',
	confluence TEXT NOT NULL DEFAULT '[]',
	entry_model TEXT NOT NULL DEFAULT '[]',
	psychological_tags TEXT NOT NULL DEFAULT '[]',
	note TEXT NOT NULL DEFAULT '',
	entry_reason TEXT NOT NULL DEFAULT '',
	exit_reason TEXT NOT NULL DEFAULT '',
	lessons TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date, id);

CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	period_type TEXT NOT NULL,
	period_key TEXT NOT NULL,
	from_date TEXT NOT NULL DEFAULT '',
	to_date TEXT NOT NULL DEFAULT '',
	good_points TEXT NOT NULL DEFAULT '',
	improvement_points TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE(period_type, period_key)
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id BIGSERIAL PRIMARY KEY,
	date TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL DEFAULT '',
	setup TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	session TEXT NOT NULL DEFAULT '',
	timeframe TEXT NOT NULL DEFAULT '',
	grade TEXT NOT NULL DEFAULT '',
	entry DOUBLE PRECISION,
	sl DOUBLE PRECISION,
	tp DOUBLE PRECISION,
	exit DOUBLE PRECISION,
	capital DOUBLE PRECISION,
	rr DOUBLE PRECISION,
	profit DOUBLE PRECISION,
	profit_pct DOUBLE PRECISION,
	mistakes TEXT NOT NULL DEFAULT '[]',
	confluence TEXT NOT NULL DEFAULT '[]',
	entry_model TEXT NOT NULL DEFAULT '[]',
	psychological_tags TEXT NOT NULL DEFAULT '[]',
	note TEXT NOT NULL DEFAULT '',
	entry_reason TEXT NOT NULL DEFAULT '',
	exit_reason TEXT NOT NULL DEFAULT '',
	lessons TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date, id);

CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	period_type TEXT NOT NULL,
	period_key TEXT NOT NULL,
	from_date TEXT NOT NULL DEFAULT '',
	to_date TEXT NOT NULL DEFAULT '',
	good_points TEXT NOT NULL DEFAULT '',
	improvement_points TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE(period_type, period_key)
);
`
