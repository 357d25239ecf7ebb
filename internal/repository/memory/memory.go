// Package memory cài đặt repository.Store trong bộ nhớ, dùng cho test và
// chạy thử không cần Postgres. Một mutex giữ trọn transaction nên WithinTx
// có isolation tuyệt đối; rollback bằng snapshot.
package memory

import (
	"context"
	"sort"
	"sync"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

type data struct {
	drivers  []domain.Driver
	vehicles []domain.Vehicle
	cards    []domain.CreditCard
	lots     []domain.ParkingLot
	cameras  []domain.Camera
	sessions []domain.Session
	payments []domain.Payment

	driverSeq  int
	cardSeq    int
	lotSeq     int
	cameraSeq  int
	sessionSeq int
	paymentSeq int
}

func (d *data) clone() *data {
	c := *d
	c.drivers = append([]domain.Driver(nil), d.drivers...)
	c.vehicles = append([]domain.Vehicle(nil), d.vehicles...)
	c.cards = append([]domain.CreditCard(nil), d.cards...)
	c.lots = append([]domain.ParkingLot(nil), d.lots...)
	c.cameras = append([]domain.Camera(nil), d.cameras...)
	c.sessions = append([]domain.Session(nil), d.sessions...)
	c.payments = append([]domain.Payment(nil), d.payments...)
	return &c
}

type Store struct {
	mu   *sync.Mutex
	d    *data
	inTx bool
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{mu: &sync.Mutex{}, d: &data{}}
}

// lock trả về hàm unlock; trong transaction thì mutex đã được giữ sẵn.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.d.clone()
	if err := fn(&Store{mu: s.mu, d: s.d, inTx: true}); err != nil {
		*s.d = *snap
		return err
	}
	return nil
}

func (s *Store) Drivers() repository.DriverRepository   { return &driverRepo{s} }
func (s *Store) Vehicles() repository.VehicleRepository { return &vehicleRepo{s} }
func (s *Store) Cards() repository.CardRepository       { return &cardRepo{s} }
func (s *Store) Lots() repository.ParkingLotRepository  { return &lotRepo{s} }
func (s *Store) Sessions() repository.SessionRepository { return &sessionRepo{s} }
func (s *Store) Payments() repository.PaymentRepository { return &paymentRepo{s} }
func (s *Store) Reports() repository.ReportRepository   { return &reportRepo{s} }

// AddLot đăng ký một bãi đỗ seed (kèm camera nếu withCamera) cho dev/test.
func (s *Store) AddLot(lot domain.ParkingLot, withCamera bool) domain.ParkingLot {
	defer s.lock()()
	s.d.lotSeq++
	lot.ID = s.d.lotSeq
	if withCamera {
		s.d.cameraSeq++
		s.d.cameras = append(s.d.cameras, domain.Camera{ID: s.d.cameraSeq, LotID: lot.ID})
		lot.CameraID = s.d.cameraSeq
	}
	s.d.lots = append(s.d.lots, lot)
	return lot
}

// --- DriverRepository ---

type driverRepo struct{ s *Store }

func (r *driverRepo) Create(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	defer r.s.lock()()
	for _, x := range r.s.d.drivers {
		if x.Email == d.Email {
			return nil, repository.ErrDuplicateEntry
		}
	}
	r.s.d.driverSeq++
	d.ID = r.s.d.driverSeq
	r.s.d.drivers = append(r.s.d.drivers, *d)
	return d, nil
}

func (r *driverRepo) FindByEmail(ctx context.Context, email string) (*domain.Driver, error) {
	defer r.s.lock()()
	for _, x := range r.s.d.drivers {
		if x.Email == email {
			out := x
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *driverRepo) FindByID(ctx context.Context, id int) (*domain.Driver, error) {
	defer r.s.lock()()
	for _, x := range r.s.d.drivers {
		if x.ID == id {
			out := x
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *driverRepo) FindAll(ctx context.Context) ([]domain.Driver, error) {
	defer r.s.lock()()
	out := append([]domain.Driver(nil), r.s.d.drivers...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *driverRepo) Count(ctx context.Context) (int, error) {
	defer r.s.lock()()
	return len(r.s.d.drivers), nil
}

// --- VehicleRepository ---

type vehicleRepo struct{ s *Store }

func (r *vehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	defer r.s.lock()()
	for _, x := range r.s.d.vehicles {
		if x.DriverID == v.DriverID && x.PlateNo == v.PlateNo {
			return repository.ErrDuplicateEntry
		}
	}
	r.s.d.vehicles = append(r.s.d.vehicles, *v)
	return nil
}

func (r *vehicleRepo) FindByDriverID(ctx context.Context, driverID int) ([]domain.Vehicle, error) {
	defer r.s.lock()()
	out := make([]domain.Vehicle, 0)
	for _, x := range r.s.d.vehicles {
		if x.DriverID == driverID {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlateNo < out[j].PlateNo })
	return out, nil
}

func (r *vehicleRepo) Delete(ctx context.Context, driverID int, plateNo string) error {
	defer r.s.lock()()
	for i, x := range r.s.d.vehicles {
		if x.DriverID == driverID && x.PlateNo == plateNo {
			r.s.d.vehicles = append(r.s.d.vehicles[:i], r.s.d.vehicles[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *vehicleRepo) Count(ctx context.Context) (int, error) {
	defer r.s.lock()()
	return len(r.s.d.vehicles), nil
}

// --- CardRepository ---

type cardRepo struct{ s *Store }

func (r *cardRepo) Create(ctx context.Context, c *domain.CreditCard) (*domain.CreditCard, error) {
	defer r.s.lock()()
	r.s.d.cardSeq++
	c.ID = r.s.d.cardSeq
	r.s.d.cards = append(r.s.d.cards, *c)
	return c, nil
}

func (r *cardRepo) FindByDriverID(ctx context.Context, driverID int) ([]domain.CreditCard, error) {
	defer r.s.lock()()
	out := make([]domain.CreditCard, 0)
	for _, x := range r.s.d.cards {
		if x.DriverID == driverID {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *cardRepo) ClearDefault(ctx context.Context, driverID int) error {
	defer r.s.lock()()
	for i := range r.s.d.cards {
		if r.s.d.cards[i].DriverID == driverID {
			r.s.d.cards[i].IsDefault = false
		}
	}
	return nil
}

func (r *cardRepo) SetDefault(ctx context.Context, driverID, cardID int) error {
	defer r.s.lock()()
	for i := range r.s.d.cards {
		if r.s.d.cards[i].DriverID == driverID && r.s.d.cards[i].ID == cardID {
			r.s.d.cards[i].IsDefault = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *cardRepo) Delete(ctx context.Context, driverID, cardID int) error {
	defer r.s.lock()()
	for i, x := range r.s.d.cards {
		if x.DriverID == driverID && x.ID == cardID {
			r.s.d.cards = append(r.s.d.cards[:i], r.s.d.cards[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- ParkingLotRepository ---

type lotRepo struct{ s *Store }

func (r *lotRepo) FindByID(ctx context.Context, id int) (*domain.ParkingLot, error) {
	defer r.s.lock()()
	for _, x := range r.s.d.lots {
		if x.ID == id {
			out := x
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *lotRepo) FindAllWithCamera(ctx context.Context) ([]domain.ParkingLot, error) {
	defer r.s.lock()()
	out := make([]domain.ParkingLot, 0)
	for _, x := range r.s.d.lots {
		for _, c := range r.s.d.cameras {
			if c.LotID == x.ID {
				lot := x
				lot.CameraID = c.ID
				out = append(out, lot)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *lotRepo) CameraIDForLot(ctx context.Context, lotID int) (int, error) {
	defer r.s.lock()()
	for _, c := range r.s.d.cameras {
		if c.LotID == lotID {
			return c.ID, nil
		}
	}
	return 0, repository.ErrNotFound
}

// --- SessionRepository ---

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	defer r.s.lock()()
	// Mô phỏng partial unique index của schema Postgres.
	for _, x := range r.s.d.sessions {
		if x.Status != domain.SessionActive {
			continue
		}
		if x.DriverID == sess.DriverID {
			return nil, repository.ErrActiveDriverConflict
		}
		if sess.SpotLabel.Valid && x.LotID == sess.LotID &&
			x.SpotLabel.Valid && x.SpotLabel.String == sess.SpotLabel.String {
			return nil, repository.ErrActiveSpotConflict
		}
	}
	r.s.d.sessionSeq++
	sess.ID = r.s.d.sessionSeq
	r.s.d.sessions = append(r.s.d.sessions, *sess)
	return sess, nil
}

func (r *sessionRepo) FindByID(ctx context.Context, id int) (*domain.Session, error) {
	defer r.s.lock()()
	for _, x := range r.s.d.sessions {
		if x.ID == id {
			out := x
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *sessionRepo) FindLatestActiveByPlate(ctx context.Context, plateNo string) (*domain.Session, error) {
	defer r.s.lock()()
	var found *domain.Session
	for _, x := range r.s.d.sessions {
		if x.PlateNo == plateNo && x.Status == domain.SessionActive {
			if found == nil || x.ID > found.ID {
				out := x
				found = &out
			}
		}
	}
	if found == nil {
		return nil, repository.ErrNoActiveSession
	}
	return found, nil
}

func (r *sessionRepo) FindLatestActiveByDriverAndPlate(ctx context.Context, driverID int, plateNo string) (*domain.Session, error) {
	defer r.s.lock()()
	var found *domain.Session
	for _, x := range r.s.d.sessions {
		if x.DriverID == driverID && x.PlateNo == plateNo && x.Status == domain.SessionActive {
			if found == nil || x.ID > found.ID {
				out := x
				found = &out
			}
		}
	}
	if found == nil {
		return nil, repository.ErrNoActiveSession
	}
	return found, nil
}

func (r *sessionRepo) CountByDriverAndStatus(ctx context.Context, driverID int, status domain.SessionStatus) (int, error) {
	defer r.s.lock()()
	n := 0
	for _, x := range r.s.d.sessions {
		if x.DriverID == driverID && x.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *sessionRepo) SpotHasActive(ctx context.Context, lotID int, spotLabel string) (bool, error) {
	defer r.s.lock()()
	for _, x := range r.s.d.sessions {
		if x.LotID == lotID && x.Status == domain.SessionActive &&
			x.SpotLabel.Valid && x.SpotLabel.String == spotLabel {
			return true, nil
		}
	}
	return false, nil
}

func (r *sessionRepo) ActiveSpotLabels(ctx context.Context, lotID int) ([]string, error) {
	defer r.s.lock()()
	labels := make([]string, 0)
	for _, x := range r.s.d.sessions {
		if x.LotID == lotID && x.Status == domain.SessionActive && x.SpotLabel.Valid {
			labels = append(labels, x.SpotLabel.String)
		}
	}
	return labels, nil
}

func (r *sessionRepo) ListUnpaidByDriver(ctx context.Context, driverID int) ([]domain.Session, error) {
	defer r.s.lock()()
	out := make([]domain.Session, 0)
	for _, x := range r.s.d.sessions {
		if x.DriverID == driverID && x.Status == domain.SessionUnpaid {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *sessionRepo) HistoryByDriver(ctx context.Context, driverID int) ([]domain.SessionHistory, error) {
	defer r.s.lock()()
	out := make([]domain.SessionHistory, 0)
	for _, x := range r.s.d.sessions {
		if x.DriverID != driverID {
			continue
		}
		h := domain.SessionHistory{
			LogID:     x.ID,
			PlateNo:   x.PlateNo,
			LotID:     x.LotID,
			SpotLabel: x.SpotLabel,
			EntryTime: x.EntryTime,
			ExitTime:  x.ExitTime,
			Fee:       x.Fee,
			Status:    x.Status,
		}
		for _, lot := range r.s.d.lots {
			if lot.ID == x.LotID {
				h.LotName = lot.Name
				break
			}
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogID > out[j].LogID })
	return out, nil
}

func (r *sessionRepo) Update(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	defer r.s.lock()()
	for i, x := range r.s.d.sessions {
		if x.ID == sess.ID {
			r.s.d.sessions[i] = *sess
			return sess, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	defer r.s.lock()()
	return len(r.s.d.sessions), nil
}

func (r *sessionRepo) CountByStatus(ctx context.Context, status domain.SessionStatus) (int, error) {
	defer r.s.lock()()
	n := 0
	for _, x := range r.s.d.sessions {
		if x.Status == status {
			n++
		}
	}
	return n, nil
}

// --- PaymentRepository ---

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	defer r.s.lock()()
	r.s.d.paymentSeq++
	p.ID = r.s.d.paymentSeq
	r.s.d.payments = append(r.s.d.payments, *p)
	return p, nil
}

func (r *paymentRepo) CountByLogID(ctx context.Context, logID int) (int, error) {
	defer r.s.lock()()
	n := 0
	for _, x := range r.s.d.payments {
		if x.LogID == logID {
			n++
		}
	}
	return n, nil
}

// --- ReportRepository ---

type reportRepo struct{ s *Store }

func (r *reportRepo) LotSummary(ctx context.Context) ([]domain.LotSummary, error) {
	defer r.s.lock()()
	out := make([]domain.LotSummary, 0, len(r.s.d.lots))
	for _, lot := range r.s.d.lots {
		s := domain.LotSummary{LotID: lot.ID, LotName: lot.Name}
		for _, x := range r.s.d.sessions {
			if x.LotID != lot.ID {
				continue
			}
			s.TotalSessions++
			if x.Status == domain.SessionActive {
				s.ActiveSessions++
			} else {
				s.CompletedSessions++
				if x.Fee.Valid {
					s.TotalRevenue += x.Fee.Float64
				}
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LotID < out[j].LotID })
	return out, nil
}

func (r *reportRepo) UnpaidAboveAverage(ctx context.Context) ([]domain.UnpaidAboveAverageRow, error) {
	defer r.s.lock()()
	totals := make(map[int]float64)
	for _, x := range r.s.d.sessions {
		if x.Status == domain.SessionUnpaid && x.Fee.Valid {
			totals[x.DriverID] += x.Fee.Float64
		}
	}
	if len(totals) == 0 {
		return []domain.UnpaidAboveAverageRow{}, nil
	}
	var sum float64
	for _, t := range totals {
		sum += t
	}
	avg := sum / float64(len(totals))

	out := make([]domain.UnpaidAboveAverageRow, 0)
	for driverID, total := range totals {
		if total <= avg {
			continue
		}
		row := domain.UnpaidAboveAverageRow{DriverID: driverID, UnpaidTotal: total}
		for _, d := range r.s.d.drivers {
			if d.ID == driverID {
				row.FullName = d.FullName
				break
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnpaidTotal > out[j].UnpaidTotal })
	return out, nil
}

func (r *reportRepo) PlatesUnion(ctx context.Context) ([]domain.PlateSource, error) {
	defer r.s.lock()()
	seen := make(map[domain.PlateSource]bool)
	out := make([]domain.PlateSource, 0)
	for _, x := range r.s.d.sessions {
		row := domain.PlateSource{Plate: x.PlateNo, Source: domain.PlateSourceEverParked}
		if !seen[row] {
			seen[row] = true
			out = append(out, row)
		}
		if x.Status == domain.SessionUnpaid {
			row = domain.PlateSource{Plate: x.PlateNo, Source: domain.PlateSourceUnpaid}
			if !seen[row] {
				seen[row] = true
				out = append(out, row)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Plate != out[j].Plate {
			return out[i].Plate < out[j].Plate
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}
