package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	patientapi "github.com/WailSalutem-Health-Care/hospital-console/internal/clients/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/messaging"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   MetricsRecorder
	broker    string
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService wires the registry. publisher and metrics may be nil.
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics MetricsRecorder, broker string, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		broker:    broker,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Register(ctx context.Context, actor string, req patientapi.Registration) (*patientapi.Patient, error) {
	now := s.now()
	normalize(&req)
	dob, err := validate(req, now)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.repo.PhoneExists(ctx, req.PhoneNumber, "")
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Status:    workflow.Active,
		CreatedAt: now,
		CreatedBy: actor,
		UpdatedAt: now,
		UpdatedBy: actor,
	}
	rec.applyRegistration(req, dob)

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	s.logger.Info().
		Str("patient_id", created.PatientID).
		Str("actor", actor).
		Bool("duplicate_phone", duplicate).
		Msg("patient registered")
	s.record(ctx, "register")

	s.publish(ctx, messaging.EventPatientRegistered, messaging.PatientRegisteredEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientRegistered, actor),
		Data: messaging.PatientRegisteredData{
			PatientID:             created.PatientID,
			Gender:                string(created.Gender),
			BloodGroup:            string(created.BloodGroup),
			DuplicatePhoneWarning: duplicate,
			CreatedAt:             created.CreatedAt,
		},
	})

	resp := created.toPatient(now)
	resp.DuplicatePhoneWarning = duplicate
	return resp, nil
}

func (s *Service) Search(ctx context.Context, params patientapi.SearchParams) (pagination.Page[patientapi.Summary], error) {
	filter, err := buildFilter(params)
	if err != nil {
		return pagination.Page[patientapi.Summary]{}, err
	}

	records, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return pagination.Page[patientapi.Summary]{}, fmt.Errorf("failed to search patients: %w", err)
	}

	today := s.now()
	summaries := make([]patientapi.Summary, len(records))
	for i := range records {
		summaries[i] = records[i].toSummary(today)
	}
	return pagination.NewPage(summaries, filter.Params, total), nil
}

func buildFilter(params patientapi.SearchParams) (SearchFilter, error) {
	fields := map[string]string{}
	f := SearchFilter{
		Search: strings.TrimSpace(params.Search),
		Params: pagination.Params{Page: params.Page, Size: params.Size},
	}
	f.Params.Validate()

	switch status := strings.ToUpper(strings.TrimSpace(params.Status)); status {
	case "", "ALL":
	case string(workflow.Active), string(workflow.Inactive):
		f.Status = workflow.ActiveStatus(status)
	default:
		fields["status"] = "Status must be one of ACTIVE, INACTIVE, ALL"
	}

	if g := patientapi.Gender(strings.ToUpper(strings.TrimSpace(params.Gender))); g != "" {
		switch g {
		case patientapi.GenderMale, patientapi.GenderFemale, patientapi.GenderOther:
			f.Gender = g
		default:
			fields["gender"] = "Gender must be one of MALE, FEMALE, OTHER"
		}
	}

	if bg := patientapi.BloodGroup(strings.ToUpper(strings.TrimSpace(params.BloodGroup))); bg != "" {
		if bg.Valid() {
			f.BloodGroup = bg
		} else {
			fields["bloodGroup"] = "Unknown blood group " + string(bg)
		}
	}

	if len(fields) > 0 {
		return SearchFilter{}, &ValidationError{Fields: fields}
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, patientID string) (*patientapi.Patient, error) {
	rec, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return rec.toPatient(s.now()), nil
}

func (s *Service) Update(ctx context.Context, actor, patientID string, req patientapi.Registration) (*patientapi.Patient, error) {
	now := s.now()
	normalize(&req)
	dob, err := validate(req, now)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.repo.PhoneExists(ctx, req.PhoneNumber, patientID)
	if err != nil {
		return nil, err
	}

	rec.applyRegistration(req, dob)
	rec.UpdatedAt = now
	rec.UpdatedBy = actor

	updated, err := s.repo.Update(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("patient_id", patientID).Str("actor", actor).Msg("patient updated")
	s.record(ctx, "update")
	s.publish(ctx, messaging.EventPatientUpdated, messaging.PatientUpdatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientUpdated, actor),
		Data: messaging.PatientUpdatedData{
			PatientID: updated.PatientID,
			Version:   updated.Version,
			UpdatedAt: updated.UpdatedAt,
		},
	})

	resp := updated.toPatient(now)
	resp.DuplicatePhoneWarning = duplicate
	return resp, nil
}

func (s *Service) Deactivate(ctx context.Context, actor, patientID string) (*patientapi.Patient, error) {
	return s.changeStatus(ctx, actor, patientID, workflow.ActionDeactivate)
}

func (s *Service) Activate(ctx context.Context, actor, patientID string) (*patientapi.Patient, error) {
	return s.changeStatus(ctx, actor, patientID, workflow.ActionActivate)
}

func (s *Service) changeStatus(ctx context.Context, actor, patientID string, action workflow.Action) (*patientapi.Patient, error) {
	rec, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	old := rec.Status
	next, err := workflow.Toggle.Next(old, action)
	if errors.Is(err, workflow.ErrActionNotAllowed) {
		return nil, statusConflict(patientID, strings.ToLower(string(old)))
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec.Status = next
	rec.UpdatedAt = now
	rec.UpdatedBy = actor
	if next == workflow.Inactive {
		rec.DeactivatedAt = &now
		rec.DeactivatedBy = actor
	} else {
		rec.ActivatedAt = &now
		rec.ActivatedBy = actor
	}

	updated, err := s.repo.Update(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("patient_id", patientID).
		Str("actor", actor).
		Str("from", string(old)).
		Str("to", string(next)).
		Msg("patient status changed")
	s.record(ctx, string(action))
	s.publish(ctx, messaging.EventPatientStatusChanged, messaging.PatientStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientStatusChanged, actor),
		Data: messaging.PatientStatusChangedData{
			PatientID: patientID,
			OldStatus: string(old),
			NewStatus: string(next),
			ChangedAt: now,
		},
	})

	return updated.toPatient(now), nil
}

// publish never fails the request; the row is already committed.
func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, routingKey, event)
	if s.metrics != nil {
		s.metrics.RecordEventPublished(ctx, s.broker, routingKey, err == nil)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("routing_key", routingKey).Msg("failed to publish patient event")
	}
}

func (s *Service) record(ctx context.Context, operation string) {
	if s.metrics != nil {
		s.metrics.RecordPatientOperation(ctx, operation)
	}
}
