package margin

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/internal/rating"
	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

// DefaultFreightClass is applied to every normalized shipment; the
// historical records carry no class information.
const DefaultFreightClass = 70

var weightPattern = regexp.MustCompile(`[0-9][0-9,]*`)

// ParseWeight extracts the numeric pounds value from a free-text weight
// field like "2,500 lbs". Returns 0 when no digits are present.
func ParseWeight(raw string) float64 {
	match := weightPattern.FindString(raw)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0
	}
	return value
}

// NormalizeShipment converts a historical shipment row into the rating
// request shape. ok is false when the record is missing an origin zip,
// destination zip, or a usable weight; such records are skipped, not
// errors.
func NormalizeShipment(rec db.Shipment) (rating.ShipmentSpec, bool) {
	originZip := strings.TrimSpace(rec.OriginZip.String)
	destZip := strings.TrimSpace(rec.DestZip.String)
	weight := ParseWeight(rec.TotalWeight.String)

	if originZip == "" || destZip == "" || weight <= 0 {
		return rating.ShipmentSpec{}, false
	}

	pallets := int(rec.PackageCount.Int64)
	if pallets <= 0 {
		pallets = 1
	}

	spec := rating.ShipmentSpec{
		PickupDate:   rec.PickupDate,
		OriginZip:    originZip,
		DestZip:      destZip,
		PalletCount:  pallets,
		GrossWeight:  weight,
		Stackable:    false,
		FreightClass: DefaultFreightClass,
	}

	if service := strings.TrimSpace(rec.ServiceLevel.String); service != "" {
		spec.ServiceLevels = []string{service}
	}

	return spec, true
}
