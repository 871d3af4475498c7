package seed

import (
	"cleanhub/config"
	. "cleanhub/internal/models"
	"cleanhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const SEED_PASSWORD = "password"

type seedUser struct {
	user    User
	address Address
	cleaner *Cleaner
}

func seedUsers() []seedUser {
	lekki := Address{
		Address: "12 Admiralty Way",
		Street:  "Admiralty Way",
		City:    "Lekki",
		State:   "Lagos",
		Country: "Nigeria",
	}
	ikeja := Address{
		Address: "4 Allen Avenue",
		Street:  "Allen Avenue",
		City:    "Ikeja",
		State:   "Lagos",
		Country: "Nigeria",
	}

	return []seedUser{
		{
			user:    User{FirstName: "Admin", LastName: "User", Email: "admin@example.com", Role: RoleAdmin},
			address: ikeja,
		},
		{
			user:    User{FirstName: "Hannah", LastName: "Owner", Email: "owner@example.com", Role: RoleHomeOwner},
			address: lekki,
		},
		{
			user:    User{FirstName: "Paul", LastName: "Manager", Email: "manager@example.com", Role: RolePropertyManager},
			address: ikeja,
		},
		{
			user:    User{FirstName: "Chidi", LastName: "Cleaner", Email: "cleaner@example.com", Role: RoleCleaner},
			address: lekki,
			cleaner: &Cleaner{
				PreferredLocations: datatypes.JSONSlice[string]{"Lekki", "Lagos"},
				Services:           datatypes.JSONSlice[string]{string(StandardCleaning), string(DeepCleaning)},
				Availability:       datatypes.JSONSlice[string]{string(Weekdays)},
				AvailabilityTime:   datatypes.JSONSlice[string]{string(Morning), string(Afternoon)},
				PreferredJobType:   AnyJob,
			},
		},
	}
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	hash, err := services.HashPassword(SEED_PASSWORD)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	for _, seed := range seedUsers() {
		var existing User
		if err := db.First(&existing, "email = ?", seed.user.Email).Error; err == nil {
			log.Info("User already exists", "email", seed.user.Email)
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			address := seed.address
			if err := tx.Create(&address).Error; err != nil {
				return err
			}

			user := seed.user
			user.Password = hash
			user.AddressID = &address.ID
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			if user.Role.OwnsProperties() {
				property := Property{
					OwnerID:        user.ID,
					AddressID:      address.ID,
					Type:           House,
					NameOfProperty: string(user.Role) + " Property - " + user.ID.String(),
					Images:         datatypes.JSONSlice[string]{},
					Status:         StatusActive,
				}
				if err := tx.Create(&property).Error; err != nil {
					return err
				}
			}

			if seed.cleaner != nil {
				cleaner := *seed.cleaner
				cleaner.UserID = user.ID
				if err := tx.Create(&cleaner).Error; err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			return log.Err("failed to seed user", err, "email", seed.user.Email)
		}

		log.Info("Seeded user", "email", seed.user.Email, "role", seed.user.Role)
	}

	return nil
}
