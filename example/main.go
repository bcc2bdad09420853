package main

import (
	"context"
	"fmt"
	"time"

	appservices "github.com/fieldops/zonereport/pkg/application/services"
	"github.com/fieldops/zonereport/pkg/domain/entities"
	"github.com/fieldops/zonereport/pkg/infrastructure/repositories/memory"
	"github.com/fieldops/zonereport/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	recordRepo := memory.NewRecordRepository(8)
	if err := recordRepo.LoadRecords(sampleTracker()); err != nil {
		fmt.Printf("❌ Failed to load tracker: %v\n", err)
		return
	}

	ruleRepo := memory.NewRuleRepository()
	if err := ruleRepo.LoadRules([]entities.RuleEntry{
		{RawStatus: "delivered", FinalStatus: "Delivered"},
		{RawStatus: "dispatch pending", FinalStatus: "Dispatch Pending"},
		{RawStatus: "out of stock", FinalStatus: "Out of stock"},
	}); err != nil {
		fmt.Printf("❌ Failed to load rules: %v\n", err)
		return
	}

	service := appservices.NewReportService(appservices.DefaultPipelineConfig(), nil, nil)

	fmt.Println("📦 Running zone report pipeline...")
	result, err := service.Run(ctx, recordRepo, ruleRepo)
	if err != nil {
		fmt.Printf("❌ Pipeline failed: %v\n", err)
		return
	}

	if err := output.Generate(result, output.Config{Formats: []string{"text"}}); err != nil {
		fmt.Printf("❌ Output failed: %v\n", err)
	}
}

func sampleTracker() []entities.RequestRecord {
	date := func(day int) *time.Time {
		t := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	return []entities.RequestRecord{
		{
			ZoneCode: "ZN001", ZoneName: "North Zone", ZoneEmail: "north@fieldops.example",
			AreaCode: "AB00101", AreaName: "North Area 1",
			RepEmail: "rep1@fieldops.example", CustomerCode: "CUST001",
			RequestID: "REQ0000001", RawStatus: "Delivered", RequestDate: date(3),
		},
		{
			ZoneCode: "ZN001", ZoneName: "North Zone", ZoneEmail: "north@fieldops.example",
			AreaCode: "AB00101", AreaName: "North Area 1",
			RepEmail: "rep2@fieldops.example", CustomerCode: "CUST002",
			RequestID: "REQ0000002", RawStatus: "dispatch pending", RequestDate: date(4),
		},
		{
			ZoneCode: "ZN001", ZoneName: "North Zone", ZoneEmail: "north@fieldops.example",
			AreaCode: "AB00102", AreaName: "North Area 2",
			RepEmail: "rep3@fieldops.example", CustomerCode: "CUST003",
			RequestID: "REQ0000003", RawStatus: "Escalated", RequestDate: date(5),
		},
		{
			ZoneCode: "ZN002", ZoneName: "South Zone", ZoneEmail: "south@fieldops.example",
			AreaCode: "AB00201", AreaName: "South Area 1",
			RepEmail: "rep4@fieldops.example", CustomerCode: "CUST004",
			RequestID: "REQ0000004", RawStatus: "Out Of Stock", RequestDate: date(6),
		},
	}
}
