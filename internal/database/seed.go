package database

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"recoleta-backend/internal/models"
)

// Seed inserts the demo data set when its tables are empty. Every section
// is idempotent, so running it against a populated database is a no-op.
func Seed(db *sqlx.DB) error {
	if err := SeedUsers(db); err != nil {
		return err
	}
	if err := SeedChallenges(db); err != nil {
		return err
	}
	if err := SeedRewards(db); err != nil {
		return err
	}
	if err := SeedSchedules(db); err != nil {
		return err
	}
	if err := SeedCollectionPoints(db); err != nil {
		return err
	}
	if err := SeedRequests(db); err != nil {
		return err
	}
	return nil
}

func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	now := time.Now().Unix()

	users := []models.User{
		{
			ID:          "org-1",
			Email:       "admin@solar.com",
			Password:    string(hash),
			Name:        "Condomínio Solar",
			Role:        models.RoleOrganization,
			Region:      "Centro",
			Avatar:      "https://ui-avatars.com/api/?name=Solar&background=10b981&color=fff",
			Phone:       "11999999999",
			CNPJ:        "12.345.678/0001-99",
			ContactName: "Síndico Roberto",
			Segment:     "Condomínio Residencial",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:            "user-1",
			Email:         "carlos@email.com",
			Password:      string(hash),
			Name:          "Carlos Morador",
			Role:          models.RoleResident,
			Region:        "Centro",
			Avatar:        "https://ui-avatars.com/api/?name=Carlos&background=random",
			Phone:         "11988888888",
			Address:       "Bloco A, Ap 42",
			CPF:           "123.456.789-00",
			HouseholdSize: 4,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	for _, u := range users {
		_, err := db.NamedExec(`
			INSERT INTO users
				(id, email, password, name, role, region, avatar, phone, address, cpf,
				 household_size, cnpj, contact_name, segment, created_at, updated_at)
			VALUES
				(:id, :email, :password, :name, :role, :region, :avatar, :phone, :address, :cpf,
				 :household_size, :cnpj, :contact_name, :segment, :created_at, :updated_at)`, u)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	log.Printf("🌱 Seeded %d users", len(users))
	return nil
}

func SeedChallenges(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM challenges`); err != nil {
		return fmt.Errorf("failed to count challenges: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().Unix()
	challenges := []models.Challenge{
		{ID: "1", Title: "Semana Zero Plástico", Description: "Não descarte plásticos não-recicláveis por 7 dias.", XPReward: 500, Type: models.ChallengeWeekly, CreatedAt: now},
		{ID: "2", Title: "Indique 1 Vizinho", Description: "Traga um vizinho para o app reColeta.", XPReward: 200, Type: models.ChallengeSpecial, CreatedAt: now},
		{ID: "3", Title: "Compostagem Diária", Description: "Registre sua compostagem de hoje.", XPReward: 50, Type: models.ChallengeDaily, CreatedAt: now},
	}

	for _, c := range challenges {
		_, err := db.NamedExec(`
			INSERT INTO challenges (id, title, description, xp_reward, type, created_at)
			VALUES (:id, :title, :description, :xp_reward, :type, :created_at)`, c)
		if err != nil {
			return fmt.Errorf("failed to seed challenge %s: %w", c.Title, err)
		}
	}

	log.Printf("🌱 Seeded %d challenges", len(challenges))
	return nil
}

func SeedRewards(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM rewards`); err != nil {
		return fmt.Errorf("failed to count rewards: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().Unix()
	rewards := []models.Reward{
		{ID: "r1", Title: "Desconto no IPTU Verde", Cost: 5000, Description: "Cupom de 5% de desconto no imposto municipal.", Stock: 10, Available: true, CreatedAt: now},
		{ID: "r2", Title: "Kit Jardinagem", Cost: 1500, Description: "Luvas, pá e sementes entregues em casa.", Stock: 5, Available: true, CreatedAt: now},
		{ID: "r3", Title: "Voucher Feira Orgânica", Cost: 800, Description: "R$ 20,00 para gastar na feira de domingo.", Stock: 50, Available: true, CreatedAt: now},
	}

	for _, r := range rewards {
		_, err := db.NamedExec(`
			INSERT INTO rewards (id, title, cost, description, stock, available, created_at)
			VALUES (:id, :title, :cost, :description, :stock, :available, :created_at)`, r)
		if err != nil {
			return fmt.Errorf("failed to seed reward %s: %w", r.Title, err)
		}
	}

	log.Printf("🌱 Seeded %d rewards", len(rewards))
	return nil
}

func SeedSchedules(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM collection_schedules`); err != nil {
		return fmt.Errorf("failed to count schedules: %w", err)
	}
	if count > 0 {
		return nil
	}

	schedules := []models.CollectionSchedule{
		{ID: "1", DayOfWeek: "Segunda-feira", StartTime: "08:00", EndTime: "12:00", WasteType: models.WasteOrganic, Sector: "Todo o Bairro", Region: "Centro"},
		{ID: "2", DayOfWeek: "Segunda-feira", StartTime: "13:00", EndTime: "17:00", WasteType: models.WasteRecyclable, Sector: "Área Comercial", Region: "Centro"},
		{ID: "3", DayOfWeek: "Quarta-feira", StartTime: "08:00", EndTime: "12:00", WasteType: models.WasteOrganic, Sector: "Todo o Bairro", Region: "Centro"},
		{ID: "4", DayOfWeek: "Sexta-feira", StartTime: "09:00", EndTime: "11:00", WasteType: models.WasteGlass, Sector: "Pontos de Entrega Voluntária", Region: "Centro"},
		{ID: "5", DayOfWeek: "Terça-feira", StartTime: "07:00", EndTime: "11:00", WasteType: models.WasteOrganic, Sector: "Ruas Principais", Region: "Vila Madalena"},
	}

	for _, s := range schedules {
		_, err := db.NamedExec(`
			INSERT INTO collection_schedules (id, day_of_week, start_time, end_time, waste_type, sector, region)
			VALUES (:id, :day_of_week, :start_time, :end_time, :waste_type, :sector, :region)`, s)
		if err != nil {
			return fmt.Errorf("failed to seed schedule %s: %w", s.ID, err)
		}
	}

	log.Printf("🌱 Seeded %d collection schedules", len(schedules))
	return nil
}

func SeedCollectionPoints(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM collection_points`); err != nil {
		return fmt.Errorf("failed to count collection points: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	daysAgo := func(d int) *int64 {
		ts := now.AddDate(0, 0, -d).Unix()
		return &ts
	}
	coord := func(v float64) *float64 { return &v }

	// São Paulo coordinates, Centro and Vila Madalena regions.
	points := []models.CollectionPoint{
		{ID: "1", Address: "Praça da Sé, Centro", Status: models.BinFull, Type: models.WasteRecyclable, Region: "Centro", Lat: coord(-23.550520), Lng: coord(-46.633308), LastCollectionAt: daysAgo(2)},
		{ID: "2", Address: "Av. Paulista, 1578", Status: models.BinOverflowing, Type: models.WasteGlass, Region: "Centro", Lat: coord(-23.561414), Lng: coord(-46.655881), LastCollectionAt: daysAgo(1)},
		{ID: "3", Address: "Rua Augusta, 1000", Status: models.BinEmpty, Type: models.WasteOrganic, Region: "Centro", Lat: coord(-23.553974), Lng: coord(-46.655794), LastCollectionAt: daysAgo(0)},
		{ID: "4", Address: "Vale do Anhangabaú", Status: models.BinHalf, Type: models.WasteRecyclable, Region: "Centro", Lat: coord(-23.547530), Lng: coord(-46.638420), LastCollectionAt: daysAgo(3)},
		{ID: "5", Address: "Mercado Municipal", Status: models.BinFull, Type: models.WasteOrganic, Region: "Centro", Lat: coord(-23.541825), Lng: coord(-46.629330), LastCollectionAt: daysAgo(4)},
		{ID: "6", Address: "Beco do Batman", Status: models.BinFull, Type: models.WasteRecyclable, Region: "Vila Madalena", Lat: coord(-23.556858), Lng: coord(-46.686526), LastCollectionAt: daysAgo(1)},
		{ID: "7", Address: "Praça Pôr do Sol", Status: models.BinEmpty, Type: models.WasteGlass, Region: "Vila Madalena", Lat: coord(-23.554605), Lng: coord(-46.703417), LastCollectionAt: daysAgo(0)},
		{ID: "8", Address: "Rua Fradique Coutinho", Status: models.BinHalf, Type: models.WasteOrganic, Region: "Vila Madalena", Lat: coord(-23.563065), Lng: coord(-46.689625), LastCollectionAt: daysAgo(2)},
	}

	for _, p := range points {
		p.CreatedAt = now.Unix()
		_, err := db.NamedExec(`
			INSERT INTO collection_points
				(id, address, status, type, region, lat, lng, predicted_level, last_collection_at, created_at)
			VALUES
				(:id, :address, :status, :type, :region, :lat, :lng, :predicted_level, :last_collection_at, :created_at)`, p)
		if err != nil {
			return fmt.Errorf("failed to seed collection point %s: %w", p.Address, err)
		}
	}

	log.Printf("🌱 Seeded %d collection points", len(points))
	return nil
}

func SeedRequests(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM collection_requests`); err != nil {
		return fmt.Errorf("failed to count requests: %w", err)
	}
	if count > 0 {
		return nil
	}

	at := func(value string) *int64 {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil
		}
		ts := t.Unix()
		return &ts
	}
	created := func(value string) int64 {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Now().Unix()
		}
		return t.Unix()
	}

	requests := []models.CollectionRequest{
		{
			ID:          "req-1",
			UserID:      "user-1",
			UserName:    "Carlos Morador",
			CommunityID: "Centro",
			PhotoURL:    "https://images.unsplash.com/photo-1550989460-0adf9ea622e2?q=80&w=300&auto=format&fit=crop",
			Category:    models.CategoryElectronic,
			ActionType:  models.ActionDiscard,
			Address:     "Bloco A, Ap 42",
			Description: "TV antiga de tubo, pesada.",
			ScheduledAt: at("2025-05-20T14:00:00Z"),
			Status:      models.RequestStatusCollected,
			CreatedAt:   created("2025-05-18T10:00:00Z"),
		},
		{
			ID:          "req-2",
			UserID:      "user-1",
			UserName:    "Carlos Morador",
			CommunityID: "Centro",
			PhotoURL:    "https://images.unsplash.com/photo-1595429035839-c99c298ffdde?q=80&w=300&auto=format&fit=crop",
			Category:    models.CategoryFurniture,
			ActionType:  models.ActionDonate,
			Address:     "Bloco A, Ap 42",
			Description: "Cadeira de escritório em bom estado.",
			ScheduledAt: at("2025-06-10T09:00:00Z"),
			Status:      models.RequestStatusQueued,
			CreatedAt:   created("2025-06-08T08:00:00Z"),
		},
	}

	store := NewRequestStore(db)
	for _, r := range requests {
		if err := store.Insert(&r); err != nil {
			return fmt.Errorf("failed to seed request %s: %w", r.ID, err)
		}
	}

	log.Printf("🌱 Seeded %d collection requests", len(requests))
	return nil
}
