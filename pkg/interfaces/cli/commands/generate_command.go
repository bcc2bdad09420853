package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// GenerateConfig holds configuration for synthetic tracker generation
type GenerateConfig struct {
	Zones           int     // Number of zones
	AreasPerZone    int     // Areas under each zone
	RequestsPerArea int     // Requests raised per area
	UnmappedRate    float64 // Fraction of rows given a status with no rule entry
	BadRowRate      float64 // Fraction of rows with a missing key field
	OutputDir       string  // Output directory for generated files
	Seed            int64   // Random seed for reproducible generation
	Verbose         bool    // Verbose output
}

// GenerateCommand produces a synthetic tracker and rule table pair for
// rehearsing the pipeline before live data arrives
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// The stock status vocabulary of the request workflow. Raw statuses come in
// inconsistent casings on real trackers, which is what the rule table cleans up.
var generatedRules = [][2]string{
	{"delivered", "Delivered"},
	{"dispatched & in transit", "Dispatched & In Transit"},
	{"dispatch pending", "Dispatch Pending"},
	{"action pending / in process at hub", "Pending for Invoicing"},
	{"action pending / in process at ho", "Action Pending at HO"},
	{"out of stock", "Out of stock"},
	{"on hold", "On hold"},
	{"not permitted", "Not permitted"},
	{"request raised", "Request Raised"},
}

// unmappedStatuses deliberately have no rule entry
var unmappedStatuses = []string{"Escalated", "Under Review"}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Verbose {
		fmt.Printf("🔧 Generating tracker with %d zones, %d areas each, %d requests per area\n",
			cmd.config.Zones, cmd.config.AreasPerZone, cmd.config.RequestsPerArea)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := cmd.generateRules(); err != nil {
		return fmt.Errorf("failed to generate rules: %w", err)
	}

	if err := cmd.generateRecords(); err != nil {
		return fmt.Errorf("failed to generate records: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("✅ Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}

	return nil
}

func (cmd *GenerateCommand) generateRules() error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, "rules.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"raw_status", "final_status"}); err != nil {
		return err
	}
	for _, rule := range generatedRules {
		if err := writer.Write([]string{rule[0], rule[1]}); err != nil {
			return err
		}
	}
	return writer.Error()
}

func (cmd *GenerateCommand) generateRecords() error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, "records.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Zone Terr Code", "Zone Name", "Zone Email",
		"Area Terr Code", "Area Name", "Area Email",
		"Rep Email", "Rep HQ", "Customer Code", "Customer Name",
		"Request Id", "Item Code", "SKU", "Requested Qty",
		"Request Date", "Request Status", "Rto Reason",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	requestSeq := 0
	baseDate := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	for z := 1; z <= cmd.config.Zones; z++ {
		zoneCode := fmt.Sprintf("ZN%03d", z)
		zoneName := fmt.Sprintf("Zone Manager %03d", z)
		zoneEmail := fmt.Sprintf("zone%03d@fieldops.example", z)

		for a := 1; a <= cmd.config.AreasPerZone; a++ {
			areaCode := fmt.Sprintf("AB%03d%02d", z, a)
			areaName := fmt.Sprintf("Area Manager %03d-%02d", z, a)
			areaEmail := fmt.Sprintf("area%03d%02d@fieldops.example", z, a)

			for r := 0; r < cmd.config.RequestsPerArea; r++ {
				requestSeq++
				row := cmd.buildRow(zoneCode, zoneName, zoneEmail, areaCode, areaName, areaEmail, requestSeq, baseDate)
				if err := writer.Write(row); err != nil {
					return err
				}
			}
		}
	}

	return writer.Error()
}

func (cmd *GenerateCommand) buildRow(
	zoneCode, zoneName, zoneEmail, areaCode, areaName, areaEmail string,
	requestSeq int,
	baseDate time.Time,
) []string {
	status := generatedRules[cmd.rand.Intn(len(generatedRules))][0]
	if cmd.rand.Float64() < cmd.config.UnmappedRate {
		status = unmappedStatuses[cmd.rand.Intn(len(unmappedStatuses))]
	}

	requestID := fmt.Sprintf("REQ%07d", requestSeq)
	if cmd.rand.Float64() < cmd.config.BadRowRate {
		requestID = ""
	}

	rtoReason := ""
	if status == "delivered" && cmd.rand.Float64() < 0.05 {
		reasons := []string{"Incomplete Address", "Dr. Non contactable", "Doctor Refused to Accept"}
		rtoReason = reasons[cmd.rand.Intn(len(reasons))]
	}

	requestDate := baseDate.AddDate(0, 0, cmd.rand.Intn(60))

	return []string{
		zoneCode, zoneName, zoneEmail,
		areaCode, areaName, areaEmail,
		fmt.Sprintf("rep%03d@fieldops.example", cmd.rand.Intn(200)+1),
		fmt.Sprintf("HQ-%02d", cmd.rand.Intn(20)+1),
		fmt.Sprintf("CUST%05d", cmd.rand.Intn(5000)+1),
		fmt.Sprintf("Customer %05d", cmd.rand.Intn(5000)+1),
		requestID,
		fmt.Sprintf("ITEM%04d", cmd.rand.Intn(300)+1),
		fmt.Sprintf("SKU-%03d", cmd.rand.Intn(80)+1),
		fmt.Sprintf("%d", cmd.rand.Intn(5)+1),
		requestDate.Format("2006-01-02"),
		status,
		rtoReason,
	}
}
