package store

// SetMeal writes one slot in a user's weekly plan. A nil recipeID clears the
// slot. Recipe ids are not validated here: the plan may reference recipes
// that arrive later through sync.
func (s *Store) SetMeal(username, weekID, day, slot string, recipeID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Users[username]; !ok {
		return ErrUnknownUser
	}

	weeks, ok := s.data.MealPlans[username]
	if !ok {
		weeks = make(UserMealPlans)
		s.data.MealPlans[username] = weeks
	}
	plan, ok := weeks[weekID]
	if !ok {
		plan = make(MealPlan)
		weeks[weekID] = plan
	}
	slots, ok := plan[day]
	if !ok {
		slots = make(map[string]*string)
		plan[day] = slots
	}
	slots[slot] = recipeID

	// The worker marshals payloads off-thread; hand it a copy, never the
	// live maps.
	s.enqueue(CollectionMealPlans, username, weeks.Clone())
	return nil
}

// WeekPlan returns a copy of one user's plan for one week. A week that was
// never planned comes back as an empty plan.
func (s *Store) WeekPlan(username, weekID string) (MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.data.Users[username]; !ok {
		return nil, ErrUnknownUser
	}
	if weeks, ok := s.data.MealPlans[username]; ok {
		if plan, ok := weeks[weekID]; ok {
			return plan.Clone(), nil
		}
	}
	return make(MealPlan), nil
}
