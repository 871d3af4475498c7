package initialize

import (
	"cleanhub/config"
	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeCleaningTypes(db, log); err != nil {
		return log.Err("failed to initialize cleaning types", err)
	}

	log.Info("Table initialization complete")
	return nil
}

func initializeCleaningTypes(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing cleaning type reference data")

	cleaningTypes := getCleaningTypesData()

	for _, cleaningType := range cleaningTypes {
		var existing CleaningType
		if err := db.First(&existing, "name = ?", cleaningType.Name).Error; err == nil {
			log.Debug("Cleaning type already exists", "name", cleaningType.Name)
			continue
		}
		log.Info("Initializing cleaning type", "name", cleaningType.Name)
		if err := db.Create(&cleaningType).Error; err != nil {
			return log.Err("failed to create cleaning type", err, "name", cleaningType.Name)
		}
	}

	log.Info("Cleaning type reference data initialized", "count", len(cleaningTypes))
	return nil
}

func getCleaningTypesData() []CleaningType {
	descriptions := map[ServiceType]string{
		StandardCleaning:         "Routine dusting, mopping, vacuuming and surface wipe-down.",
		DeepCleaning:             "Top-to-bottom clean including appliances, grout and fixtures.",
		MoveInOutCleaning:        "Empty-home clean before moving in or after moving out.",
		PostConstructionCleaning: "Dust, debris and paint splatter removal after renovation.",
		OfficeCleaning:           "Workspace, kitchenette and restroom cleaning for offices.",
		LaundryService:           "Washing, drying, ironing and folding.",
	}

	cleaningTypes := make([]CleaningType, 0, len(ServiceTypes))
	for _, serviceType := range ServiceTypes {
		cleaningTypes = append(cleaningTypes, CleaningType{
			Name:        string(serviceType),
			Description: descriptions[serviceType],
			Images:      datatypes.JSONSlice[string]{},
		})
	}
	return cleaningTypes
}
