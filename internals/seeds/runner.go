package seeds

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	authService "dayflow_backend/internals/features/users/auth/service"
	userRepo "dayflow_backend/internals/features/users/user/repository"
	"dayflow_backend/internals/seeds/accounts"
)

// RunAllSeeds seeds the demo accounts from accountsFile (built-in defaults
// when empty).
func RunAllSeeds(ctx context.Context, db *gorm.DB, accountsFile string, bcryptCost int, loc *time.Location) error {
	seeds, err := accounts.LoadAccounts(accountsFile)
	if err != nil {
		return err
	}
	year := time.Now().In(loc).Year()
	n, err := accounts.SeedAccounts(ctx, userRepo.NewUserRepository(db), authService.NewPasswordHasher(bcryptCost), seeds, year)
	if err != nil {
		return err
	}
	log.Printf("[INFO] seeding done, %d account(s) created", n)
	return nil
}
