package store

// Days are the meal-plan day keys, Monday first.
var Days = []string{"måndag", "tisdag", "onsdag", "torsdag", "fredag", "lördag", "söndag"}

// SlotDinner is the only meal slot currently in use.
const SlotDinner = "middag"

// OrphanOwner labels recipes whose creator was deleted while no admin was
// available to inherit them.
const OrphanOwner = "Okänd"

// User is keyed by username in AppData.Users. An empty PasswordHash marks a
// migrated or reset account that must pick a password on first login.
type User struct {
	PasswordHash string `json:"passwordHash"`
}

// Recipe is keyed by its generated id in AppData.Recipes. Ingredients and
// Instructions are newline-separated text blobs, one ingredient/step per
// line. CreatedBy is a username back-reference kept consistent across
// rename, delete and transfer of the referenced user.
type Recipe struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	OriginalPortions int    `json:"originalPortions"`
	Ingredients      string `json:"ingredients"`
	Instructions     string `json:"instructions"`
	CreatedBy        string `json:"createdBy"`
}

// MealPlan maps day key -> slot name -> recipe id. A nil recipe id is an
// explicitly cleared slot.
type MealPlan map[string]map[string]*string

// UserMealPlans maps week id ("YYYY-Www") -> that week's plan.
type UserMealPlans map[string]MealPlan

// AppData is the root aggregate and the sole unit of truth. It is loaded
// wholesale at startup and thereafter mutated only through Store commands.
type AppData struct {
	Users     map[string]User          `json:"users"`
	Recipes   map[string]Recipe        `json:"recipes"`
	MealPlans map[string]UserMealPlans `json:"mealPlans"`
	AdminUser *string                  `json:"adminUser"`
}

// NewAppData returns an empty aggregate with all maps allocated.
func NewAppData() AppData {
	return AppData{
		Users:     make(map[string]User),
		Recipes:   make(map[string]Recipe),
		MealPlans: make(map[string]UserMealPlans),
	}
}

// Normalize allocates any nil top-level maps, so aggregates decoded from
// partial JSON are safe to mutate.
func (d *AppData) Normalize() {
	if d.Users == nil {
		d.Users = make(map[string]User)
	}
	if d.Recipes == nil {
		d.Recipes = make(map[string]Recipe)
	}
	if d.MealPlans == nil {
		d.MealPlans = make(map[string]UserMealPlans)
	}
}

// Clone returns a deep copy of the aggregate.
func (d AppData) Clone() AppData {
	out := NewAppData()
	for name, u := range d.Users {
		out.Users[name] = u
	}
	for id, r := range d.Recipes {
		out.Recipes[id] = r
	}
	for user, weeks := range d.MealPlans {
		out.MealPlans[user] = weeks.Clone()
	}
	if d.AdminUser != nil {
		admin := *d.AdminUser
		out.AdminUser = &admin
	}
	return out
}

// Clone returns a deep copy of the per-user plan map.
func (p UserMealPlans) Clone() UserMealPlans {
	out := make(UserMealPlans, len(p))
	for weekID, plan := range p {
		out[weekID] = plan.Clone()
	}
	return out
}

// Clone returns a deep copy of a single week's plan.
func (p MealPlan) Clone() MealPlan {
	out := make(MealPlan, len(p))
	for day, slots := range p {
		daySlots := make(map[string]*string, len(slots))
		for slot, recipeID := range slots {
			if recipeID != nil {
				id := *recipeID
				daySlots[slot] = &id
			} else {
				daySlots[slot] = nil
			}
		}
		out[day] = daySlots
	}
	return out
}
