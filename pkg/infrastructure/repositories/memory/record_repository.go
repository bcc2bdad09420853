package memory

import (
	"sort"

	"github.com/fieldops/zonereport/pkg/domain/entities"
	"github.com/fieldops/zonereport/pkg/domain/repositories"
)

// RecordRepository provides in-memory request record storage
type RecordRepository struct {
	records []entities.RequestRecord
	byZone  map[entities.ZoneCode][]int
}

// NewRecordRepository creates a new in-memory record repository
func NewRecordRepository(expectedRecords int) *RecordRepository {
	return &RecordRepository{
		records: make([]entities.RequestRecord, 0, expectedRecords),
		byZone:  make(map[entities.ZoneCode][]int),
	}
}

// Verify interface compliance
var _ repositories.RecordRepository = (*RecordRepository)(nil)

// LoadRecords loads records into the repository
func (r *RecordRepository) LoadRecords(records []entities.RequestRecord) error {
	for _, record := range records {
		r.AddRecord(record)
	}
	return nil
}

// AddRecord adds a single record to the repository
func (r *RecordRepository) AddRecord(record entities.RequestRecord) {
	r.byZone[record.ZoneCode] = append(r.byZone[record.ZoneCode], len(r.records))
	r.records = append(r.records, record)
}

// GetAllRecords returns all records in load order
func (r *RecordRepository) GetAllRecords() ([]entities.RequestRecord, error) {
	out := make([]entities.RequestRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// GetRecordsByZone returns the records for one zone code in load order
func (r *RecordRepository) GetRecordsByZone(zoneCode entities.ZoneCode) ([]entities.RequestRecord, error) {
	indexes := r.byZone[zoneCode]
	out := make([]entities.RequestRecord, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, r.records[i])
	}
	return out, nil
}

// GetZoneCodes returns the distinct zone codes in ascending order
func (r *RecordRepository) GetZoneCodes() ([]entities.ZoneCode, error) {
	codes := make([]entities.ZoneCode, 0, len(r.byZone))
	for code := range r.byZone {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes, nil
}

// Count returns the number of loaded records
func (r *RecordRepository) Count() int {
	return len(r.records)
}
