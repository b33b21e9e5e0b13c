package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	directorymodels "pharmastaff/internal/api/directory/models"
	directorysvc "pharmastaff/internal/api/directory/service"
	profilesvc "pharmastaff/internal/api/profile/service"
	"pharmastaff/internal/global"
	"pharmastaff/internal/logger"
)

// demoOwnerID là user id cố định cho dữ liệu demo, để InitDefaultData idempotent.
const demoOwnerID = "111111111111111111111111"

// InitDefaultData seed dữ liệu directory demo khi INITMODE bật:
// một mạng lưới đã claim, một chuỗi, một nhà thuốc và một chủ nhà thuốc kèm hồ sơ.
// Ca tạo bởi tổ chức này sẽ có đủ 5 tier trong allowedLevels.
func InitDefaultData() {
	log := logger.GetAppLogger()

	if !global.MongoDB_ServerConfig.InitMode {
		log.Info("🔄 [INIT] INITMODE disabled, skipping default data")
		return
	}
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	directory, err := directorysvc.NewDirectoryService()
	if err != nil {
		log.Fatalf("Failed to initialize directory service: %v", err)
	}
	profiles, err := profilesvc.NewProfileService()
	if err != nil {
		log.Fatalf("Failed to initialize profile service: %v", err)
	}

	ctx := context.Background()

	network, err := directory.Upsert(ctx, bson.M{"name": "Mạng lưới Demo"}, bson.M{
		"type":       directorymodels.OrgTypeNetwork,
		"orgClaimed": true,
	})
	if err != nil {
		log.Fatalf("Failed to seed demo network: %v", err)
	}

	chain, err := directory.Upsert(ctx, bson.M{"name": "Chuỗi Demo"}, bson.M{
		"type":     directorymodels.OrgTypeChain,
		"parentId": network.ID,
	})
	if err != nil {
		log.Fatalf("Failed to seed demo chain: %v", err)
	}

	pharmacy, err := directory.Upsert(ctx, bson.M{"name": "Nhà thuốc Demo"}, bson.M{
		"type":     directorymodels.OrgTypePharmacy,
		"parentId": chain.ID,
	})
	if err != nil {
		log.Fatalf("Failed to seed demo pharmacy: %v", err)
	}

	ownerID, _ := primitive.ObjectIDFromHex(demoOwnerID)
	if _, err := directory.MemberService().Upsert(ctx, bson.M{
		"organizationId": pharmacy.ID,
		"userId":         ownerID,
	}, bson.M{
		"employmentType": directorymodels.EmploymentFullTime,
		"role":           directorymodels.OrgRoleOwner,
	}); err != nil {
		log.Warnf("Failed to seed demo owner membership: %v", err)
	}

	if _, err := profiles.Upsert(ctx, bson.M{"userId": ownerID}, bson.M{
		"fullName": "Chủ Nhà thuốc Demo",
		"email":    "owner@demo.local",
	}); err != nil {
		log.Warnf("Failed to seed demo owner profile: %v", err)
	}

	log.Infof("✅ [INIT] InitDefaultData completed (pharmacy: %s)", pharmacy.ID.Hex())
}
