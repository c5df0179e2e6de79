package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Documents: one row per catalog record (raw text + department label)
CREATE TABLE IF NOT EXISTS documents (
    doc_id INTEGER PRIMARY KEY AUTOINCREMENT,
    department TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    source_path TEXT NOT NULL,
    language TEXT,
    text TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(department, source_path, title)
);

CREATE INDEX IF NOT EXISTS idx_documents_department ON documents(department);

-- Per-document metrics, one row per analyzed document.
-- word_counts is the frequency map as a JSON object: {"word": count, ...}
CREATE TABLE IF NOT EXISTS document_metrics (
    doc_id INTEGER PRIMARY KEY,
    word_count INTEGER NOT NULL,
    sentence_count INTEGER NOT NULL,
    avg_word_len REAL NOT NULL,
    avg_sentence_len REAL NOT NULL,
    readability REAL NOT NULL,
    sentiment REAL NOT NULL,
    type_token_ratio REAL NOT NULL,
    word_counts TEXT,
    computed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (doc_id) REFERENCES documents(doc_id) ON DELETE CASCADE
);

-- Runs: one row per analyze invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    document_count INTEGER NOT NULL,
    department_count INTEGER NOT NULL,
    output_dir TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

-- Per-department aggregates for a run.
-- word_counts is the merged frequency map JSON; top_keywords is a JSON array
-- of "word:count" strings.
CREATE TABLE IF NOT EXISTS group_metrics (
    group_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    department TEXT NOT NULL,
    document_count INTEGER NOT NULL,
    mean_word_count REAL NOT NULL,
    mean_sentence_count REAL NOT NULL,
    mean_word_len REAL NOT NULL,
    mean_sentence_len REAL NOT NULL,
    mean_readability REAL NOT NULL,
    mean_sentiment REAL NOT NULL,
    mean_type_token_ratio REAL NOT NULL,
    word_counts TEXT,
    top_keywords TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, department)
);

CREATE INDEX IF NOT EXISTS idx_group_metrics_run ON group_metrics(run_id);
`
