package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/pgvector/pgvector-go"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/internal/scheduler"
	"tripflow/internal/worker"
	"tripflow/pkg/utils"
)

func mustDate(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func f64(v float64) *float64 { return &v }

// fakeTripService hands back a fixed trip. Only AuthorizeTripAccess is
// meaningful; services under test never call the rest.
type fakeTripService struct {
	trip           *dbm.Trip
	authErr        error
	editorErr      error // returned only when needEditor is set
	lastNeedEditor bool
}

func (f *fakeTripService) AuthorizeTripAccess(ctx context.Context, tripID, accountID string, needEditor bool) (*dbm.Trip, error) {
	f.lastNeedEditor = needEditor
	if f.authErr != nil {
		return nil, f.authErr
	}
	if needEditor && f.editorErr != nil {
		return nil, f.editorErr
	}
	return f.trip, nil
}

func (f *fakeTripService) CreateTrip(ctx context.Context, ownerID string, request request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	panic("not used")
}

func (f *fakeTripService) GetTrip(ctx context.Context, tripID, accountID string) (*response_models.TripResponse, error) {
	panic("not used")
}

func (f *fakeTripService) ListTrips(ctx context.Context, accountID string, page, pageSize int) ([]response_models.TripResponse, error) {
	panic("not used")
}

func (f *fakeTripService) UpdateTrip(ctx context.Context, tripID, accountID string, request request_models.UpdateTripRequest) (*response_models.TripResponse, error) {
	panic("not used")
}

func (f *fakeTripService) DeleteTrip(ctx context.Context, tripID, accountID string) error {
	panic("not used")
}

func (f *fakeTripService) InviteMember(ctx context.Context, tripID, ownerID string, request request_models.InviteMemberRequest) error {
	panic("not used")
}

type fakeTripRepo struct {
	trips map[string]*dbm.Trip

	created      []*dbm.Trip
	updated      []*dbm.Trip
	deleted      []uuid.UUID
	replacedDays []dbm.TripDay
	members      []*dbm.TripMember
	member       *dbm.TripMember

	getErr error
}

func newFakeTripRepo(trips ...*dbm.Trip) *fakeTripRepo {
	repo := &fakeTripRepo{trips: make(map[string]*dbm.Trip)}
	for _, trip := range trips {
		repo.trips[trip.ID.String()] = trip
	}
	return repo
}

func (f *fakeTripRepo) Create(ctx context.Context, trip *dbm.Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	f.created = append(f.created, trip)
	f.trips[trip.ID.String()] = trip
	return nil
}

func (f *fakeTripRepo) GetByID(ctx context.Context, id string) (*dbm.Trip, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.trips[id], nil
}

func (f *fakeTripRepo) ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]dbm.Trip, error) {
	var out []dbm.Trip
	for _, trip := range f.trips {
		if trip.OwnerID.String() == accountID {
			out = append(out, *trip)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) Update(ctx context.Context, trip *dbm.Trip) error {
	f.updated = append(f.updated, trip)
	f.trips[trip.ID.String()] = trip
	return nil
}

func (f *fakeTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.trips, id.String())
	return nil
}

func (f *fakeTripRepo) ReplaceDays(ctx context.Context, tripID uuid.UUID, days []dbm.TripDay) error {
	f.replacedDays = days
	if trip, ok := f.trips[tripID.String()]; ok {
		trip.Days = days
	}
	return nil
}

func (f *fakeTripRepo) AddMember(ctx context.Context, member *dbm.TripMember) error {
	f.members = append(f.members, member)
	return nil
}

func (f *fakeTripRepo) GetMember(ctx context.Context, tripID, accountID string) (*dbm.TripMember, error) {
	if f.member != nil && f.member.AccountID.String() == accountID {
		return f.member, nil
	}
	return nil, nil
}

type fakeAccountRepo struct {
	byEmail map[string]*dbm.Account
	byID    map[string]*dbm.Account

	inserted    []*dbm.Account
	updatedHash map[string]string
}

func newFakeAccountRepo(accounts ...*dbm.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{
		byEmail:     make(map[string]*dbm.Account),
		byID:        make(map[string]*dbm.Account),
		updatedHash: make(map[string]string),
	}
	for _, account := range accounts {
		repo.byEmail[account.Email] = account
		repo.byID[account.ID.String()] = account
	}
	return repo
}

func (f *fakeAccountRepo) Insert(ctx context.Context, account *dbm.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	f.inserted = append(f.inserted, account)
	f.byEmail[account.Email] = account
	f.byID[account.ID.String()] = account
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id string) (*dbm.Account, error) {
	return f.byID[id], nil
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*dbm.Account, error) {
	return f.byEmail[email], nil
}

func (f *fakeAccountRepo) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	f.updatedHash[id] = hash
	if account, ok := f.byID[id]; ok {
		account.PasswordHash = hash
	}
	return nil
}

type fakePOIRepo struct {
	pois map[string]*dbm.POI

	created    []*dbm.POI
	updated    []*dbm.POI
	deleted    []uuid.UUID
	applied    []repositories.POIScheduleUpdate
	applyCalls int
	clearCalls int

	listErr error
}

func newFakePOIRepo(pois ...*dbm.POI) *fakePOIRepo {
	repo := &fakePOIRepo{pois: make(map[string]*dbm.POI)}
	for _, poi := range pois {
		repo.pois[poi.ID.String()] = poi
	}
	return repo
}

func (f *fakePOIRepo) Create(ctx context.Context, poi *dbm.POI) (uuid.UUID, error) {
	if poi.ID == uuid.Nil {
		poi.ID = uuid.New()
	}
	f.created = append(f.created, poi)
	f.pois[poi.ID.String()] = poi
	return poi.ID, nil
}

func (f *fakePOIRepo) Update(ctx context.Context, poi *dbm.POI) error {
	f.updated = append(f.updated, poi)
	f.pois[poi.ID.String()] = poi
	return nil
}

func (f *fakePOIRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.pois, id.String())
	return nil
}

func (f *fakePOIRepo) GetByID(ctx context.Context, tripID, id string) (*dbm.POI, error) {
	return f.pois[id], nil
}

func (f *fakePOIRepo) ListByTrip(ctx context.Context, tripID string) ([]dbm.POI, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]dbm.POI, 0, len(f.pois))
	for _, poi := range f.pois {
		out = append(out, *poi)
	}
	return out, nil
}

func (f *fakePOIRepo) ApplySchedule(ctx context.Context, tripID uuid.UUID, updates []repositories.POIScheduleUpdate) error {
	f.applyCalls++
	f.applied = updates
	return nil
}

func (f *fakePOIRepo) ClearSchedule(ctx context.Context, tripID uuid.UUID) error {
	f.clearCalls++
	return nil
}

type fakeAccommodationRepo struct {
	accommodations []dbm.Accommodation

	upserted    []*dbm.Accommodation
	deletedDays []int

	listErr error
}

func (f *fakeAccommodationRepo) Upsert(ctx context.Context, acc *dbm.Accommodation) error {
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	f.upserted = append(f.upserted, acc)
	return nil
}

func (f *fakeAccommodationRepo) ListByTrip(ctx context.Context, tripID string) ([]dbm.Accommodation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accommodations, nil
}

func (f *fakeAccommodationRepo) DeleteByDay(ctx context.Context, tripID uuid.UUID, dayNumber int) error {
	f.deletedDays = append(f.deletedDays, dayNumber)
	return nil
}

type fakeCatalogRepo struct {
	matches   []repositories.CatalogMatch
	searchErr error
	lastLimit int
}

func (f *fakeCatalogRepo) SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]repositories.CatalogMatch, error) {
	f.lastLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.matches, nil
}

func (f *fakeCatalogRepo) GetByIDs(ctx context.Context, ids []string) ([]dbm.PoiEmbedding, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) Create(ctx context.Context, row *dbm.PoiEmbedding) error {
	return nil
}

func (f *fakeCatalogRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.matches)), nil
}

type fakeORSClient struct {
	durations    [][]*float64
	durationsErr error
	matrixCalls  int
	lastProfile  string
	lastLocs     [][]float64

	geocode      *GeocodePoint
	geocodeErr   error
	geocodeCalls int
	lastQuery    string
}

func (f *fakeORSClient) Durations(ctx context.Context, profile string, locations [][]float64) ([][]*float64, error) {
	f.matrixCalls++
	f.lastProfile = profile
	f.lastLocs = locations
	if f.durationsErr != nil {
		return nil, f.durationsErr
	}
	return f.durations, nil
}

func (f *fakeORSClient) GeocodeSearch(ctx context.Context, text string) (*GeocodePoint, error) {
	f.geocodeCalls++
	f.lastQuery = text
	if f.geocodeErr != nil {
		return nil, f.geocodeErr
	}
	return f.geocode, nil
}

type fakeMailService struct {
	resetTo     []string
	resetTokens []string
	inviteTo    []string
	err         error
}

func (f *fakeMailService) SendMailToResetPassword(to, token string) error {
	f.resetTo = append(f.resetTo, to)
	f.resetTokens = append(f.resetTokens, token)
	return f.err
}

func (f *fakeMailService) SendMailToInviteMember(to, inviterName, tripTitle string) error {
	f.inviteTo = append(f.inviteTo, to)
	return f.err
}

type fakeDistributor struct {
	payloads []*worker.PayloadMatrixPrecompute
	err      error
}

func (f *fakeDistributor) DistributeTaskMatrixPrecompute(ctx context.Context, payload *worker.PayloadMatrixPrecompute, opts ...asynq.Option) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

func (f *fakeDistributor) Close() error { return nil }

type fakeMatrixService struct {
	cached      scheduler.TravelMatrix
	cachedErr   error
	lastProfile string
}

func (f *fakeMatrixService) BuildTravelMatrix(ctx context.Context, trip *dbm.Trip, pois []dbm.POI, accommodations []dbm.Accommodation, profile string) (scheduler.TravelMatrix, error) {
	return f.cached, nil
}

func (f *fakeMatrixService) CachedTravelMatrix(ctx context.Context, tripID, profile string) (scheduler.TravelMatrix, error) {
	f.lastProfile = profile
	if f.cachedErr != nil {
		return nil, f.cachedErr
	}
	return f.cached, nil
}

func (f *fakeMatrixService) RefreshTripMatrix(ctx context.Context, tripID string) error {
	return nil
}

type fakeEmbeddingClient struct {
	vector pgvector.Vector
	err    error
}

func (f *fakeEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if f.err != nil {
		return pgvector.Vector{}, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbeddingClient) GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]pgvector.Vector, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

type fakePlanGenerator struct {
	response string
	err      error
}

func (f *fakePlanGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakePlanGenerator) Close() error { return nil }
