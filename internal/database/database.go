package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("🔌 DATABASE CONNECTION ATTEMPT")
	log.Printf("   📍 Database URL length: %d characters", len(dbURL))
	log.Printf("   📍 URL prefix: %s...", dbURL[:min(30, len(dbURL))])
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	log.Println("🔄 Step 1: Attempting sqlx.Connect()...")
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ DATABASE CONNECTION FAILED AT sqlx.Connect()")
		log.Printf("   Error type: %T", err)
		log.Printf("   Error message: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("✅ Step 1 Complete: sqlx.Connect() succeeded")

	log.Println("🔄 Step 2: Testing connection with Ping()...")
	if err := db.Ping(); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ DATABASE CONNECTION FAILED AT Ping()")
		log.Printf("   Error type: %T", err)
		log.Printf("   Error message: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("✅ Step 2 Complete: Ping() succeeded")

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("✅ DATABASE CONNECTION SUCCESSFUL")
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	return db, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('resident', 'organization')),
			region TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			cpf TEXT NOT NULL DEFAULT '',
			household_size INT NOT NULL DEFAULT 0,
			cnpj TEXT NOT NULL DEFAULT '',
			contact_name TEXT NOT NULL DEFAULT '',
			segment TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create user_points table (point ledger, one row per user, seeded lazily)
		`CREATE TABLE IF NOT EXISTS user_points (
			user_id TEXT PRIMARY KEY,
			points INT NOT NULL CHECK(points >= 0),
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create collection_requests table
		`CREATE TABLE IF NOT EXISTS collection_requests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			community_id TEXT NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL CHECK(category IN ('Eletrônico', 'Móvel', 'Reciclável', 'Óleo', 'Outro')),
			action_type TEXT NOT NULL CHECK(action_type IN ('Doar', 'Vender', 'Descartar')),
			address TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			scheduled_at BIGINT,
			status TEXT NOT NULL CHECK(status IN ('created', 'queued', 'in_route', 'collected', 'cancelled')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create challenges table
		`CREATE TABLE IF NOT EXISTS challenges (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			xp_reward INT NOT NULL CHECK(xp_reward >= 0),
			type TEXT NOT NULL CHECK(type IN ('daily', 'weekly', 'special')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create challenge_submissions table
		`CREATE TABLE IF NOT EXISTS challenge_submissions (
			id TEXT PRIMARY KEY,
			challenge_id TEXT NOT NULL,
			challenge_title TEXT NOT NULL,
			user_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			proof_text TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('pending', 'approved', 'rejected')),
			admin_feedback TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (challenge_id) REFERENCES challenges(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create rewards table
		`CREATE TABLE IF NOT EXISTS rewards (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			cost INT NOT NULL CHECK(cost >= 0),
			description TEXT NOT NULL DEFAULT '',
			stock INT NOT NULL CHECK(stock >= 0),
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create redemption_requests table
		`CREATE TABLE IF NOT EXISTS redemption_requests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			reward_id TEXT NOT NULL,
			reward_title TEXT NOT NULL,
			cost INT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('pending', 'delivered', 'rejected')),
			admin_feedback TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (reward_id) REFERENCES rewards(id) ON DELETE CASCADE
		)`,

		// Create community_posts table
		`CREATE TABLE IF NOT EXISTS community_posts (
			id TEXT PRIMARY KEY,
			author_id TEXT NOT NULL,
			author TEXT NOT NULL,
			content TEXT NOT NULL,
			likes INT NOT NULL DEFAULT 0,
			type TEXT NOT NULL CHECK(type IN ('Alert', 'Project', 'Tip')),
			region TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create post_likes table (one row per user per post)
		`CREATE TABLE IF NOT EXISTS post_likes (
			post_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			PRIMARY KEY (post_id, user_id),
			FOREIGN KEY (post_id) REFERENCES community_posts(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create post_comments table
		`CREATE TABLE IF NOT EXISTS post_comments (
			id TEXT PRIMARY KEY,
			post_id TEXT NOT NULL,
			author TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (post_id) REFERENCES community_posts(id) ON DELETE CASCADE
		)`,

		// Create local_projects table
		`CREATE TABLE IF NOT EXISTS local_projects (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			author_id TEXT NOT NULL,
			author_name TEXT NOT NULL,
			region TEXT NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create project_participants table (one row per user per project)
		`CREATE TABLE IF NOT EXISTS project_participants (
			project_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			PRIMARY KEY (project_id, user_id),
			FOREIGN KEY (project_id) REFERENCES local_projects(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create project_comments table
		`CREATE TABLE IF NOT EXISTS project_comments (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			author TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (project_id) REFERENCES local_projects(id) ON DELETE CASCADE
		)`,

		// Create collection_schedules table
		`CREATE TABLE IF NOT EXISTS collection_schedules (
			id TEXT PRIMARY KEY,
			day_of_week TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			waste_type TEXT NOT NULL,
			sector TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL
		)`,

		// Create alerts table
		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT NOT NULL CHECK(type IN ('info', 'warning', 'critical')),
			created_by TEXT NOT NULL,
			region TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create collection_points table
		`CREATE TABLE IF NOT EXISTS collection_points (
			id TEXT PRIMARY KEY,
			address TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('Vazio', 'Meio Cheio', 'Cheio', 'Transbordando')),
			type TEXT NOT NULL,
			region TEXT NOT NULL,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			predicted_level TEXT NOT NULL DEFAULT '',
			last_collection_at BIGINT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create FCM tokens table
		`CREATE TABLE IF NOT EXISTS fcm_tokens (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			device_type TEXT NOT NULL CHECK(device_type IN ('ios', 'android', 'web')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_users_region_role ON users(region, role)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_user_id ON collection_requests(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_community_id ON collection_requests(community_id)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_status ON collection_requests(status)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_created_at ON collection_requests(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_user_id ON challenge_submissions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_challenge_id ON challenge_submissions(challenge_id)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_status ON challenge_submissions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_user_challenge ON challenge_submissions(user_id, challenge_id)`,
		`CREATE INDEX IF NOT EXISTS idx_redemptions_user_id ON redemption_requests(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_redemptions_status ON redemption_requests(status)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_region ON community_posts(region)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON community_posts(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_post_comments_post_id ON post_comments(post_id)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_region ON local_projects(region)`,
		`CREATE INDEX IF NOT EXISTS idx_project_comments_project_id ON project_comments(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_region ON collection_schedules(region)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_region ON alerts(region)`,
		`CREATE INDEX IF NOT EXISTS idx_points_region ON collection_points(region)`,
		`CREATE INDEX IF NOT EXISTS idx_points_status ON collection_points(status)`,
		`CREATE INDEX IF NOT EXISTS idx_fcm_tokens_user_id ON fcm_tokens(user_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_fcm_tokens_token ON fcm_tokens(token)`,

		// At most one non-rejected submission per (user, challenge) pair
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_submissions_one_active
			ON challenge_submissions(user_id, challenge_id) WHERE status != 'rejected'`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("✓ Database migrations completed")
	return nil
}
