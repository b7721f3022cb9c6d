package report

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    status      TEXT NOT NULL,
    invocation  TEXT NOT NULL,
    report_path TEXT NOT NULL,
    started_at  INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    stdout      BLOB NOT NULL,
    stderr      BLOB NOT NULL,
    exit_code   INTEGER NOT NULL,
    error       TEXT,
    write_error TEXT
);

CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at DESC);
`
