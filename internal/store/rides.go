package store

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/frete99/frete99-backend/internal/models"
	"github.com/frete99/frete99-backend/pkg/utils"
)

// CreateRideInput carries a client's freight request.
type CreateRideInput struct {
	From              string                `json:"from"`
	To                string                `json:"to"`
	Distance          models.DistanceBucket `json:"distance"`
	VehicleType       models.VehicleType    `json:"vehicleType"`
	SelectedItems     []string              `json:"selectedItems"`
	NeedHelper        bool                  `json:"needHelper"`
	Estimate          string                `json:"estimate"`
	PreferredDriverID *uint                 `json:"preferredDriverId"`
}

// CreateRide opens a freight request. With a preferred driver the ride is
// born ACCEPTED and already assigned; otherwise it starts OPEN for any driver
// to claim. The estimate is computed server side when the client sends none.
func (s *Store) CreateRide(clientID uint, in CreateRideInput) (*models.Ride, error) {
	if in.From == "" {
		return nil, validationErr("Origem é obrigatória")
	}
	if in.To == "" {
		return nil, validationErr("Destino é obrigatório")
	}
	if !models.ValidVehicleType(in.VehicleType) {
		return nil, validationErr("Tipo de veículo inválido")
	}

	estimate := in.Estimate
	if estimate == "" {
		estimate = utils.CalculateEstimate(in.VehicleType, in.Distance, in.NeedHelper).TotalRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[clientID]; !ok {
		return nil, notFoundErr("Usuário não encontrado")
	}

	status := models.RideStatusOpen
	var driverID *uint
	if in.PreferredDriverID != nil {
		driver, ok := s.users[*in.PreferredDriverID]
		if !ok || driver.Role != models.RoleDriver {
			return nil, notFoundErr("Motorista não encontrado")
		}
		id := driver.ID
		driverID = &id
		status = models.RideStatusAccepted
	}

	s.nextRideID++
	ride := &models.Ride{
		ID:            s.nextRideID,
		ClientID:      clientID,
		DriverID:      driverID,
		From:          in.From,
		To:            in.To,
		Distance:      in.Distance,
		VehicleType:   in.VehicleType,
		SelectedItems: append([]string(nil), in.SelectedItems...),
		NeedHelper:    in.NeedHelper,
		Estimate:      estimate,
		Status:        status,
		CreatedAt:     s.now(),
	}
	s.rides[ride.ID] = ride

	s.log.WithFields(logrus.Fields{"rideId": ride.ID, "clientId": clientID, "status": status}).Info("ride created")
	return rideCopy(ride), nil
}

// Claim assigns an OPEN ride to a driver. The status check and the mutation
// share the store lock, so of two concurrent claims exactly one wins and the
// other sees the conflict.
func (s *Store) Claim(rideID, driverID uint) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, ok := s.rides[rideID]
	if !ok {
		return nil, notFoundErr("Frete não encontrado")
	}
	driver, ok := s.users[driverID]
	if !ok || driver.Role != models.RoleDriver {
		return nil, permissionErr("Apenas motoristas podem aceitar fretes")
	}
	if ride.Status != models.RideStatusOpen {
		return nil, conflictErr("Frete não está mais disponível")
	}

	id := driver.ID
	ride.DriverID = &id
	ride.Status = models.RideStatusAccepted

	s.log.WithFields(logrus.Fields{"rideId": ride.ID, "driverId": driverID}).Info("ride claimed")
	return rideCopy(ride), nil
}

func validTransition(from, to models.RideStatus) bool {
	switch to {
	case models.RideStatusOnRoute:
		return from == models.RideStatusAccepted
	case models.RideStatusCompleted:
		return from == models.RideStatusOnRoute
	case models.RideStatusCanceled:
		return from == models.RideStatusAccepted || from == models.RideStatusOnRoute
	default:
		return false
	}
}

// AdvanceStatus moves an assigned ride along its lifecycle. Only the assigned
// driver may advance it. Completion stamps the receipt code and counts the
// trip for the driver, both exactly once.
func (s *Store) AdvanceStatus(rideID, driverID uint, newStatus models.RideStatus) (*models.Ride, error) {
	if newStatus != models.RideStatusOnRoute &&
		newStatus != models.RideStatusCompleted &&
		newStatus != models.RideStatusCanceled {
		return nil, validationErr("Status inválido")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, ok := s.rides[rideID]
	if !ok {
		return nil, notFoundErr("Frete não encontrado")
	}
	if ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, permissionErr("Este frete pertence a outro motorista")
	}
	if !validTransition(ride.Status, newStatus) {
		return nil, conflictErr("Transição de status não permitida")
	}

	ride.Status = newStatus
	if newStatus == models.RideStatusCompleted {
		ride.ReceiptCode = utils.ReceiptCode(ride.ID, s.now().Year())
		if driver, ok := s.users[driverID]; ok {
			driver.Trips++
		}
	}

	s.log.WithFields(logrus.Fields{"rideId": ride.ID, "status": newStatus}).Info("ride status updated")
	return rideCopy(ride), nil
}

// Rate records a post-completion score. Each side rates at most once; a
// second attempt is rejected. A client's score feeds the driver's running
// mean; a driver's score of the client is stored on the ride only.
func (s *Store) Rate(rideID, raterID uint, raterRole models.UserRole, score int) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, ok := s.rides[rideID]
	if !ok {
		return nil, notFoundErr("Frete não encontrado")
	}
	if ride.Status != models.RideStatusCompleted {
		return nil, validationErr("Só é possível avaliar fretes concluídos")
	}
	if score < 1 || score > 5 {
		return nil, validationErr("Avaliação deve ser entre 1 e 5")
	}

	switch raterRole {
	case models.RoleClient:
		if ride.ClientID != raterID {
			return nil, permissionErr("Este frete pertence a outro cliente")
		}
		if ride.ClientRating != nil {
			return nil, conflictErr("Frete já avaliado")
		}
		ride.ClientRating = &score
		if ride.DriverID != nil {
			s.recordRating(*ride.DriverID, score)
		}
	case models.RoleDriver:
		if ride.DriverID == nil || *ride.DriverID != raterID {
			return nil, permissionErr("Este frete pertence a outro motorista")
		}
		if ride.DriverRating != nil {
			return nil, conflictErr("Frete já avaliado")
		}
		ride.DriverRating = &score
	default:
		return nil, permissionErr("Perfil não pode avaliar este frete")
	}

	return rideCopy(ride), nil
}

// ListOpen returns every OPEN ride, newest first, each with the requesting
// client's profile attached.
func (s *Store) ListOpen() []models.RideView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]models.RideView, 0)
	for _, r := range s.rides {
		if r.Status != models.RideStatusOpen {
			continue
		}
		views = append(views, s.rideView(r))
	}
	sortByRecency(views)
	return views
}

// ListForUser returns the rides a user participates in, newest first.
// Clients match on ownership, drivers on assignment.
func (s *Store) ListForUser(userID uint, role models.UserRole) []models.RideView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]models.RideView, 0)
	for _, r := range s.rides {
		switch role {
		case models.RoleClient:
			if r.ClientID != userID {
				continue
			}
		case models.RoleDriver:
			if r.DriverID == nil || *r.DriverID != userID {
				continue
			}
		default:
			continue
		}
		views = append(views, s.rideView(r))
	}
	sortByRecency(views)
	return views
}

// rideView enriches a ride with its participants. Caller must hold s.mu.
func (s *Store) rideView(r *models.Ride) models.RideView {
	view := models.RideView{Ride: *rideCopy(r)}
	if client, ok := s.users[r.ClientID]; ok {
		p := client.Public()
		view.Client = &p
	}
	if r.DriverID != nil {
		if driver, ok := s.users[*r.DriverID]; ok {
			p := driver.Public()
			view.Driver = &p
		}
	}
	return view
}

func sortByRecency(views []models.RideView) {
	sort.Slice(views, func(i, j int) bool { return views[i].ID > views[j].ID })
}
