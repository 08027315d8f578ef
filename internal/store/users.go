package store

import (
	"math"
	"regexp"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/frete99/frete99-backend/internal/models"
	"github.com/frete99/frete99-backend/pkg/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterInput carries the registration form. Validation runs in a fixed
// order and reports the first failing rule.
type RegisterInput struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	Role        models.UserRole    `json:"role"`
	Phone       string             `json:"phone"`
	VehicleType models.VehicleType `json:"vehicleType"`
	CarModel    string             `json:"carModel"`
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func validateRegistration(in *RegisterInput) *Error {
	if len(in.Name) < 3 {
		return validationErr("Nome deve ter pelo menos 3 caracteres")
	}
	if !emailPattern.MatchString(in.Email) {
		return validationErr("Email inválido")
	}
	if len(in.Password) < 6 {
		return validationErr("Senha deve ter pelo menos 6 caracteres")
	}
	if d := digitCount(in.Phone); d < 10 || d > 11 {
		return validationErr("Telefone deve ter 10 ou 11 dígitos")
	}
	if !models.ValidRole(in.Role) {
		return validationErr("Perfil inválido")
	}
	if in.Role == models.RoleDriver {
		if !models.ValidVehicleType(in.VehicleType) {
			return validationErr("Tipo de veículo é obrigatório para motoristas")
		}
		if in.CarModel == "" {
			return validationErr("Modelo do veículo é obrigatório para motoristas")
		}
	}
	return nil
}

// Register creates a user after ordered validation. The uniqueness check and
// the insert happen under the same lock, so two concurrent registrations with
// the same email cannot both succeed.
func (s *Store) Register(in RegisterInput) (*models.User, error) {
	if err := validateRegistration(&in); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(in.Email)
	if _, exists := s.emailIndex[email]; exists {
		return nil, conflictErr("Email já cadastrado")
	}

	s.nextUserID++
	user := &models.User{
		ID:           s.nextUserID,
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Phone:        in.Phone,
		CreatedAt:    s.now(),
	}
	if in.Role == models.RoleDriver {
		user.VehicleType = in.VehicleType
		user.CarModel = in.CarModel
		user.Rating = 5.0
		user.IsAvailable = true
		user.Plan = models.PlanFree
	}

	s.users[user.ID] = user
	s.emailIndex[email] = user.ID

	s.log.WithFields(logrus.Fields{"userId": user.ID, "role": user.Role}).Info("user registered")
	return userCopy(user), nil
}

// Authenticate verifies credentials. The failure is deliberately generic so
// callers cannot probe which emails exist.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	s.mu.Lock()
	id, ok := s.emailIndex[normalizeEmail(email)]
	var user *models.User
	if ok {
		user = userCopy(s.users[id])
	}
	s.mu.Unlock()

	// Password verification runs outside the lock; scrypt is deliberately slow.
	if user == nil || !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, authErr("Email ou senha incorretos")
	}
	return user, nil
}

func (s *Store) GetUser(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, notFoundErr("Usuário não encontrado")
	}
	return userCopy(user), nil
}

// SetAvailability toggles a driver's availability. Idempotent.
func (s *Store) SetAvailability(userID uint, isAvailable bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, notFoundErr("Usuário não encontrado")
	}
	if user.Role != models.RoleDriver {
		return nil, permissionErr("Apenas motoristas podem alterar disponibilidade")
	}

	user.IsAvailable = isAvailable
	return userCopy(user), nil
}

// SetPhoto stores the uploaded profile photo URL on a driver.
func (s *Store) SetPhoto(userID uint, photoURL string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, notFoundErr("Usuário não encontrado")
	}
	if user.Role != models.RoleDriver {
		return nil, permissionErr("Apenas motoristas podem enviar foto")
	}

	user.Photo = photoURL
	return userCopy(user), nil
}

// ListAvailableDrivers returns available drivers, optionally filtered by
// vehicle type. VIP drivers always come first; within the same plan the order
// is descending rating, stable among equals.
func (s *Store) ListAvailableDrivers(vehicleType models.VehicleType) []models.PublicProfile {
	s.mu.Lock()

	drivers := make([]*models.User, 0)
	for _, u := range s.users {
		if u.Role != models.RoleDriver || !u.IsAvailable {
			continue
		}
		if vehicleType != "" && u.VehicleType != vehicleType {
			continue
		}
		drivers = append(drivers, userCopy(u))
	}
	s.mu.Unlock()

	// Map iteration order is random; fix a base order before the stable sort.
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].ID < drivers[j].ID })
	sort.SliceStable(drivers, func(i, j int) bool {
		vi, vj := drivers[i].Plan == models.PlanVIP, drivers[j].Plan == models.PlanVIP
		if vi != vj {
			return vi
		}
		return drivers[i].Rating > drivers[j].Rating
	})

	profiles := make([]models.PublicProfile, len(drivers))
	for i, d := range drivers {
		profiles[i] = d.Public()
	}
	return profiles
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// recordRating folds a new score into the driver's running mean. Caller must
// hold s.mu.
func (s *Store) recordRating(driverID uint, score int) {
	driver, ok := s.users[driverID]
	if !ok {
		return
	}
	driver.Rating = round2((driver.Rating*float64(driver.TotalRatings) + float64(score)) / float64(driver.TotalRatings+1))
	driver.TotalRatings++
}
