package routes

import (
	"strconv"
	"strings"
	"time"

	"boat-rental-server/models"
	"boat-rental-server/storage"
	"boat-rental-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// rangeFilter is active only when both bounds were supplied.
type rangeFilter struct {
	Min, Max float64
	Active   bool
}

// searchFilters is the structured form of the search query string. Every filter
// is independent; absent parameters impose no constraint.
type searchFilters struct {
	Price  rangeFilter
	Length rangeFilter
	Power  rangeFilter
	Year   rangeFilter

	Location      string
	BoatType      string
	EngineType    string
	SkipperOption string

	AvailabilityStart time.Time
	AvailabilityEnd   time.Time
	AvailabilitySet   bool
}

// parseSearchFilters reads the supported query parameters through the supplied
// getter. Malformed numbers deactivate the filter rather than failing the search.
func parseSearchFilters(param func(string) string) searchFilters {
	var f searchFilters

	f.Price = parseRangeFilter(param("price.min"), param("price.max"))
	f.Length = parseRangeFilter(param("length.min"), param("length.max"))
	f.Power = parseRangeFilter(param("power.min"), param("power.max"))
	f.Year = parseRangeFilter(param("year.min"), param("year.max"))

	f.Location = strings.TrimSpace(param("location"))
	f.BoatType = strings.TrimSpace(param("boatType"))
	f.EngineType = strings.TrimSpace(param("engineType"))
	f.SkipperOption = strings.TrimSpace(param("skipperOption"))

	startStr := param("availability.startDate")
	endStr := param("availability.endDate")
	if startStr != "" && endStr != "" {
		start, startErr := time.Parse("2006-01-02", startStr)
		end, endErr := time.Parse("2006-01-02", endStr)
		if startErr == nil && endErr == nil && !end.Before(start) {
			f.AvailabilityStart = start
			f.AvailabilityEnd = end
			f.AvailabilitySet = true
		}
	}

	return f
}

func parseRangeFilter(minStr, maxStr string) rangeFilter {
	if minStr == "" || maxStr == "" {
		return rangeFilter{}
	}
	min, minErr := strconv.ParseFloat(minStr, 64)
	max, maxErr := strconv.ParseFloat(maxStr, 64)
	if minErr != nil || maxErr != nil {
		return rangeFilter{}
	}
	return rangeFilter{Min: min, Max: max, Active: true}
}

// apply builds the conjunction of all active predicates onto the boats query.
func (f searchFilters) apply(q *gorm.DB) *gorm.DB {
	if f.Price.Active {
		q = q.Where("reference_price >= ? AND reference_price <= ?", f.Price.Min, f.Price.Max)
	}
	if f.Length.Active {
		q = q.Where("boat_length >= ? AND boat_length <= ?", f.Length.Min, f.Length.Max)
	}
	if f.Power.Active {
		q = q.Where("engine_power >= ? AND engine_power <= ?", f.Power.Min, f.Power.Max)
	}
	if f.Year.Active {
		q = q.Where("year >= ? AND year <= ?", f.Year.Min, f.Year.Max)
	}

	if f.Location != "" {
		q = q.Where("LOWER(city_harbour) = LOWER(?)", f.Location)
	}
	if f.BoatType != "" {
		q = q.Where("type = ?", f.BoatType)
	}
	if f.EngineType != "" {
		q = q.Where("engine_type = ?", f.EngineType)
	}
	if f.SkipperOption != "" {
		q = q.Where("skipper_option = ?", f.SkipperOption)
	}

	if f.AvailabilitySet {
		// A boat matches only when no booked ledger range overlaps the requested
		// window (closed-interval test, same as the booking conflict check).
		q = q.Where(`NOT EXISTS (
			SELECT 1 FROM boat_availabilities
			WHERE boat_availabilities.boat_id = boats.id
			  AND boat_availabilities.deleted_at IS NULL
			  AND boat_availabilities.is_booked = true
			  AND boat_availabilities.start_date <= ?
			  AND boat_availabilities.end_date >= ?
		)`, f.AvailabilityEnd, f.AvailabilityStart)
	}

	return q
}

// SearchBoats handles boat search with independent, ANDed filters.
func SearchBoats(ctx iris.Context) {
	filters := parseSearchFilters(ctx.URLParam)

	q := filters.apply(storage.DB.Model(&models.Boat{}))

	var boats []models.Boat
	if err := q.Order("created_at DESC").Find(&boats).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(boats)
}

// ListLocations returns the distinct city/harbour values across all boats.
func ListLocations(ctx iris.Context) {
	var locations []string
	if err := storage.DB.Model(&models.Boat{}).
		Where("city_harbour <> ''").
		Distinct("city_harbour").
		Order("city_harbour ASC").
		Pluck("city_harbour", &locations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if locations == nil {
		locations = []string{}
	}
	ctx.JSON(locations)
}
