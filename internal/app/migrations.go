// Package app — migrations.go: SQL-миграции, встроенные в код
// для упрощения деплоя.
package app

var migration001Master = `
CREATE TABLE IF NOT EXISTS item_templates (
    id BIGINT PRIMARY KEY,
    item_type INTEGER NOT NULL,
    name VARCHAR(255) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    amount_per_sec BIGINT NOT NULL DEFAULT 0,
    max_level INTEGER NOT NULL DEFAULT 0,
    max_amount_per_sec BIGINT NOT NULL DEFAULT 0,
    base_exp_per_level BIGINT NOT NULL DEFAULT 0,
    gained_exp BIGINT NOT NULL DEFAULT 0,
    shortening_min BIGINT NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS gacha_definitions (
    id BIGINT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    start_at BIGINT NOT NULL,
    end_at BIGINT NOT NULL,
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS gacha_pool_entries (
    id BIGINT PRIMARY KEY,
    gacha_id BIGINT NOT NULL REFERENCES gacha_definitions(id),
    item_type INTEGER NOT NULL,
    item_id BIGINT NOT NULL,
    amount BIGINT NOT NULL,
    weight BIGINT NOT NULL,
    created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_gacha_pool_gacha_id ON gacha_pool_entries(gacha_id);
CREATE TABLE IF NOT EXISTS broadcast_presents (
    id BIGINT PRIMARY KEY,
    registered_start_at BIGINT NOT NULL,
    registered_end_at BIGINT NOT NULL,
    item_type INTEGER NOT NULL,
    item_id BIGINT NOT NULL,
    amount BIGINT NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS login_bonus_definitions (
    id BIGINT PRIMARY KEY,
    start_at BIGINT NOT NULL,
    end_at BIGINT NOT NULL,
    column_count INTEGER NOT NULL,
    looped BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS login_bonus_rewards (
    id BIGINT PRIMARY KEY,
    login_bonus_id BIGINT NOT NULL REFERENCES login_bonus_definitions(id),
    reward_sequence INTEGER NOT NULL,
    item_type INTEGER NOT NULL,
    item_id BIGINT NOT NULL,
    amount BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    UNIQUE (login_bonus_id, reward_sequence)
);
CREATE TABLE IF NOT EXISTS rulesets (
    id BIGINT PRIMARY KEY,
    status INTEGER NOT NULL DEFAULT 0,
    version VARCHAR(64) NOT NULL
);
`

var migration002IDCounter = `
CREATE TABLE IF NOT EXISTS id_counter (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    last_id BIGINT NOT NULL
);
INSERT INTO id_counter (id, last_id) VALUES (1, 0) ON CONFLICT (id) DO NOTHING;
`

var migration003Players = `
CREATE TABLE IF NOT EXISTS players (
    id BIGINT PRIMARY KEY,
    coin BIGINT NOT NULL DEFAULT 0,
    last_reward_at BIGINT NOT NULL,
    last_activated_at BIGINT NOT NULL,
    registered_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT
);
CREATE TABLE IF NOT EXISTS player_devices (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    viewer_id VARCHAR(255) NOT NULL,
    platform_type INTEGER NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT,
    UNIQUE (player_id, viewer_id)
);
CREATE TABLE IF NOT EXISTS player_bans (
    id BIGINT PRIMARY KEY,
    player_id BIGINT UNIQUE NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT
);
`

var migration004Items = `
CREATE TABLE IF NOT EXISTS player_cards (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    card_template_id BIGINT NOT NULL,
    amount_per_sec BIGINT NOT NULL,
    level INTEGER NOT NULL,
    total_exp BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT
);
CREATE INDEX IF NOT EXISTS idx_player_cards_player_id ON player_cards(player_id);
CREATE TABLE IF NOT EXISTS player_items (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    item_type INTEGER NOT NULL,
    item_id BIGINT NOT NULL,
    amount BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT,
    UNIQUE (player_id, item_id)
);
`

var migration005Decks = `
CREATE TABLE IF NOT EXISTS player_decks (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    card_id_1 BIGINT NOT NULL,
    card_id_2 BIGINT NOT NULL,
    card_id_3 BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT
);
CREATE INDEX IF NOT EXISTS idx_player_decks_player_id ON player_decks(player_id);
`

var migration006LoginBonusPresents = `
CREATE TABLE IF NOT EXISTS login_bonus_progress (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    login_bonus_id BIGINT NOT NULL,
    last_reward_sequence INTEGER NOT NULL,
    loop_count INTEGER NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT,
    UNIQUE (player_id, login_bonus_id)
);
CREATE TABLE IF NOT EXISTS present_box (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    sent_at BIGINT NOT NULL,
    item_type INTEGER NOT NULL,
    item_id BIGINT NOT NULL,
    amount BIGINT NOT NULL,
    present_message TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT
);
CREATE INDEX IF NOT EXISTS idx_present_box_player_live ON present_box(player_id, deleted_at, created_at DESC);
CREATE TABLE IF NOT EXISTS broadcast_receipts (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    broadcast_id BIGINT NOT NULL,
    received_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    UNIQUE (player_id, broadcast_id)
);
`

var migration007TokensSessions = `
CREATE TABLE IF NOT EXISTS one_time_tokens (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    token VARCHAR(128) UNIQUE NOT NULL,
    token_type INTEGER NOT NULL,
    expired_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT
);
CREATE INDEX IF NOT EXISTS idx_tokens_player_live ON one_time_tokens(player_id, deleted_at);
CREATE TABLE IF NOT EXISTS sessions (
    id BIGINT PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id),
    session_id VARCHAR(128) UNIQUE NOT NULL,
    expired_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    deleted_at BIGINT
);
CREATE INDEX IF NOT EXISTS idx_sessions_player_live ON sessions(player_id, deleted_at);
`

// Минимальный набор мастер-данных: активная версия правил и шаблон
// стартовой карты. Боевые мастер-данные загружаются отдельно.
var migration008Seed = `
INSERT INTO rulesets (id, status, version) VALUES (1, 1, '1')
ON CONFLICT (id) DO NOTHING;
INSERT INTO item_templates
    (id, item_type, name, description, amount_per_sec, max_level, max_amount_per_sec, base_exp_per_level, gained_exp, shortening_min)
VALUES
    (1, 1, 'coin', 'game currency', 0, 0, 0, 0, 0, 0),
    (2, 2, 'starter card', 'starting producer card', 1, 50, 50, 10, 0, 0),
    (3, 3, 'enhance stone', 'basic enhance material', 0, 0, 0, 0, 10, 0),
    (4, 4, 'hourglass', 'time shortening material', 0, 0, 0, 0, 0, 60)
ON CONFLICT (id) DO NOTHING;
`
