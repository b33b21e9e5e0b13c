package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"pharmastaff/config"
	"pharmastaff/internal/database"
	"pharmastaff/internal/global"
)

func InitRegistry() {
	logrus.Info("Initialized registry")

	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB,
// sau đó tạo các index của engine (unique index là ràng buộc nghiệp vụ cứng).
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)

	if _, err := global.RegistryDatabase.Register(cfg.MongoDB_DBName, db); err != nil {
		return err
	}

	colNames := []string{
		global.MongoDB_ColNames.Shifts,
		global.MongoDB_ColNames.ShiftMemberStatuses,
		global.MongoDB_ColNames.ShiftInterests,
		global.MongoDB_ColNames.ShiftAssignments,
		global.MongoDB_ColNames.ShiftAudit,
		global.MongoDB_ColNames.Profiles,
		global.MongoDB_ColNames.Organizations,
		global.MongoDB_ColNames.OrgMembers,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	if err := database.CreateShiftIndexes(context.TODO(), db); err != nil {
		return err
	}
	logrus.Info("Created shift indexes")

	return nil
}
