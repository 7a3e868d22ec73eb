package optimizer

// Location represents a geographic point in decimal degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Pickup is a single pending waste-pickup request, snapshotted by the caller.
// Weight, volume and coordinates come from operator entry and may be absent.
// A pickup without both coordinates is never clustered; it is returned in
// SkippedPickups instead.
type Pickup struct {
	ID           string   // CUID2 pickup identifier
	PickupNumber string   // Human-readable number (e.g. "GB-2024-0917")
	OrgName      string   // Waste-generating organization
	WeightKg     *float64 // Estimated weight in kg, nil if not captured
	VolumeM3     *float64 // Estimated volume in m3, nil means derive from weight
	Lat          *float64
	Lng          *float64
}

// HasCoords reports whether the pickup is eligible for clustering.
func (p Pickup) HasCoords() bool { return p.Lat != nil && p.Lng != nil }

// Farmer is a registered compost destination. Only farmers with both
// coordinates on file are considered as delivery destinations.
type Farmer struct {
	ID   string
	Name *string
	Lat  *float64
	Lng  *float64
}

// HasCoords reports whether the farmer can be matched to a cluster.
func (f Farmer) HasCoords() bool { return f.Lat != nil && f.Lng != nil }

// Rate is the published rate-card entry for one vehicle type.
type Rate struct {
	VehicleType string  // "auto", "tempo", "truck", ...
	BaseFareRs  float64 // Fixed fare per trip
	PerKmRs     float64 // Distance fare per km per trip
}

// Vehicle is one registered vehicle in the active fleet. A nil or zero
// CapacityM3 means the vehicle publishes no volume constraint.
type Vehicle struct {
	ID          string
	VehicleType string
	CapacityKg  float64
	CapacityM3  *float64
}

// JobSuggestion is one proposed dispatch: a group of pickups, the farmer to
// deliver to, the cheapest evaluated vehicle type, and its trip/cost estimate.
// VehicleIDs lists every registered vehicle of the chosen type so the
// dispatch UI can assign a concrete vehicle manually.
type JobSuggestion struct {
	PickupIDs       []string `json:"pickupIds"`
	Pickups         []Pickup `json:"pickups"`
	FarmerID        string   `json:"farmerId"`
	FarmerName      string   `json:"farmerName"`
	VehicleType     string   `json:"vehicleType"`
	VehicleIDs      []string `json:"vehicleIds"`
	Trips           int      `json:"trips"`
	RouteKm         float64  `json:"routeKm"`
	EstimatedCostRs float64  `json:"estimatedCostRs"`
	TotalWeightKg   float64  `json:"totalWeightKg"`
	TotalVolumeM3   float64  `json:"totalVolumeM3"`
}

// OptimizeResult is the output of one optimizer invocation. Suggestions are
// sorted ascending by estimated cost. SkippedPickups holds pickups that lack
// coordinates. Clusters that resolve to no farmer or no vehicle type appear
// in neither list; callers wanting to surface those must reconcile against
// their input (see UnplacedCount).
type OptimizeResult struct {
	Suggestions    []JobSuggestion `json:"suggestions"`
	SkippedPickups []Pickup        `json:"skippedPickups"`
}

// UnplacedCount returns how many of the given input pickups ended up in
// neither a suggestion nor SkippedPickups. These belong to clusters that
// were dropped for lack of a reachable farmer or a rateable vehicle type.
func (r *OptimizeResult) UnplacedCount(input []Pickup) int {
	placed := make(map[string]struct{}, len(input))
	for _, s := range r.Suggestions {
		for _, id := range s.PickupIDs {
			placed[id] = struct{}{}
		}
	}
	for _, p := range r.SkippedPickups {
		placed[p.ID] = struct{}{}
	}
	unplaced := 0
	for _, p := range input {
		if _, ok := placed[p.ID]; !ok {
			unplaced++
		}
	}
	return unplaced
}

// OptimizeRequest carries one snapshot of dispatch data into the service
// wrapper. Zero EpsKm and DensityKgPerM3 fall back to the configured values.
type OptimizeRequest struct {
	Pickups        []Pickup
	Farmers        []Farmer
	Rates          []Rate
	Vehicles       []Vehicle
	EpsKm          float64
	DensityKgPerM3 float64
}
