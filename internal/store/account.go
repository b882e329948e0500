package store

import "github.com/matplanerare/matplanerare/internal/password"

// Login authenticates and opens the session. Unknown users and wrong
// passwords are deliberately indistinguishable to the caller.
func (s *Store) Login(username, plain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.data.Users[username]
	if !ok || !password.Verify(plain, u.PasswordHash) {
		return ErrInvalidCredentials
	}

	s.currentUser = username
	s.wasAdminOnLogout = false
	return nil
}

// NeedsInitialPassword reports whether the account exists but has never had
// a password set.
func (s *Store) NeedsInitialPassword(username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.data.Users[username]
	if !ok {
		return false, ErrUnknownUser
	}
	return u.PasswordHash == "", nil
}

// SetInitialPassword sets the first password on a pending account and logs
// the user in. Accounts that already hold a password are rejected.
func (s *Store) SetInitialPassword(username, plain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.data.Users[username]
	if !ok {
		return ErrUnknownUser
	}
	if u.PasswordHash != "" {
		return ErrPasswordAlreadySet
	}
	if password.TooShort(plain) {
		return ErrWeakPassword
	}

	u.PasswordHash = password.Hash(plain)
	s.data.Users[username] = u
	s.currentUser = username
	s.wasAdminOnLogout = false

	s.enqueue(CollectionUsers, username, userDoc(u))
	return nil
}

// CreateUser registers a new account and logs it in. The very first account
// on a fresh install becomes the admin.
func (s *Store) CreateUser(username, plain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" || plain == "" {
		return ErrEmptyField
	}
	if password.TooShort(plain) {
		return ErrWeakPassword
	}
	if _, exists := s.data.Users[username]; exists {
		return ErrDuplicateUsername
	}

	u := User{PasswordHash: password.Hash(plain)}
	s.data.Users[username] = u
	s.currentUser = username
	s.wasAdminOnLogout = false
	s.enqueue(CollectionUsers, username, userDoc(u))

	if s.data.AdminUser == nil {
		admin := username
		s.data.AdminUser = &admin
		s.enqueue(CollectionSettings, SettingsDoc, settingsDoc(s.data.AdminUser))
	}
	return nil
}

// ResetPassword overwrites a user's password. Admin only; the handler
// enforces that.
func (s *Store) ResetPassword(username, plain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.data.Users[username]
	if !ok {
		return ErrUnknownUser
	}
	if password.TooShort(plain) {
		return ErrWeakPassword
	}

	u.PasswordHash = password.Hash(plain)
	s.data.Users[username] = u
	s.enqueue(CollectionUsers, username, userDoc(u))
	return nil
}

// RenameUser moves an account to a new name, carrying the password, meal
// plans, recipe ownership, admin designation and the session along.
func (s *Store) RenameUser(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldName == "" || newName == "" {
		return ErrEmptyField
	}
	if oldName == newName {
		return nil
	}
	u, ok := s.data.Users[oldName]
	if !ok {
		return ErrUnknownUser
	}
	if _, exists := s.data.Users[newName]; exists {
		return ErrDuplicateUsername
	}

	s.data.Users[newName] = u
	delete(s.data.Users, oldName)
	s.enqueueDelete(CollectionUsers, oldName)
	s.enqueue(CollectionUsers, newName, userDoc(u))

	if plans, ok := s.data.MealPlans[oldName]; ok {
		s.data.MealPlans[newName] = plans
		delete(s.data.MealPlans, oldName)
		s.enqueueDelete(CollectionMealPlans, oldName)
		s.enqueue(CollectionMealPlans, newName, plans.Clone())
	}

	for id, r := range s.data.Recipes {
		if r.CreatedBy == oldName {
			r.CreatedBy = newName
			s.data.Recipes[id] = r
			s.enqueue(CollectionRecipes, id, recipeDoc(r))
		}
	}

	if s.data.AdminUser != nil && *s.data.AdminUser == oldName {
		admin := newName
		s.data.AdminUser = &admin
		s.enqueue(CollectionSettings, SettingsDoc, settingsDoc(s.data.AdminUser))
	}

	if s.currentUser == oldName {
		s.currentUser = newName
	}
	return nil
}

// DeleteUser removes an account together with its meal plans. The user's
// recipes survive: they are reassigned to the admin, or to the placeholder
// owner when the admin is the one being deleted or none is configured.
func (s *Store) DeleteUser(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Users[username]; !ok {
		return ErrUnknownUser
	}

	heir := OrphanOwner
	if s.data.AdminUser != nil && *s.data.AdminUser != username {
		heir = *s.data.AdminUser
	}
	for id, r := range s.data.Recipes {
		if r.CreatedBy == username {
			r.CreatedBy = heir
			s.data.Recipes[id] = r
			s.enqueue(CollectionRecipes, id, recipeDoc(r))
		}
	}

	delete(s.data.Users, username)
	s.enqueueDelete(CollectionUsers, username)
	if _, ok := s.data.MealPlans[username]; ok {
		delete(s.data.MealPlans, username)
		s.enqueueDelete(CollectionMealPlans, username)
	}

	if s.currentUser == username {
		s.currentUser = ""
	}
	return nil
}

// TransferRecipes reassigns every recipe owned by from to the to user and
// returns how many moved. The target must be a real account.
func (s *Store) TransferRecipes(from, to string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Users[to]; !ok {
		return 0, ErrUnknownUser
	}

	moved := 0
	for id, r := range s.data.Recipes {
		if r.CreatedBy == from {
			r.CreatedBy = to
			s.data.Recipes[id] = r
			s.enqueue(CollectionRecipes, id, recipeDoc(r))
			moved++
		}
	}
	return moved, nil
}

// Logout closes the session and remembers whether it was an admin session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wasAdminOnLogout = s.currentUser != "" &&
		s.data.AdminUser != nil && s.currentUser == *s.data.AdminUser
	s.currentUser = ""
}
