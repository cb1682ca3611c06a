// fake-backend serves an in-memory copy of the marketplace's auth and admin
// endpoints, seeded with a few records, for trying the console locally.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ewaste-admin-console/internal/apitest"
	"ewaste-admin-console/internal/config"
	"ewaste-admin-console/internal/logger"
	"ewaste-admin-console/internal/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	b := apitest.NewBackend()
	admin := b.AddUser(model.User{Email: "admin@ewaste.local", FullName: "Site Admin", IsAdmin: true})
	member := b.AddUser(model.User{Email: "member@ewaste.local", FullName: "Casey Member", Phone: "+1 555 0100", City: "Portland"})
	b.AddOrder(model.Order{OrderID: "ORD-1001", WasteType: "metal", Quantity: 5, Unit: "kg", Status: "pending", Owner: &model.Owner{Email: member.Email}})
	b.AddOrder(model.Order{OrderID: "ORD-1002", WasteType: "plastic", Quantity: 12.5, Unit: "kg", Status: "accepted", OwnerID: member.ID})
	b.AddOrder(model.Order{WasteType: "glass", Quantity: 3, Unit: "kg", Status: "pending"})

	adminToken := b.IssueToken(admin.ID)
	memberToken := b.IssueToken(member.ID)

	log.Info("seeded fake backend",
		zap.String("admin_token", adminToken),
		zap.String("member_token", memberToken),
	)

	gin.SetMode(gin.ReleaseMode)
	r := apitest.NewRouter(b)

	log.Info("fake backend listening", zap.String("port", cfg.FakeBackendPort))
	if err := r.Run(":" + cfg.FakeBackendPort); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}
