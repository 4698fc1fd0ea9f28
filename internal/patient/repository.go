package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Repository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRepository(db *sql.DB, logger zerolog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

const selectColumns = `
	patient_id, first_name, last_name, date_of_birth, gender, phone,
	COALESCE(email, ''), COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''),
	COALESCE(emergency_contact_name, ''), COALESCE(emergency_contact_phone, ''), COALESCE(emergency_contact_relationship, ''),
	blood_group, COALESCE(known_allergies, ''), COALESCE(chronic_conditions, ''), status,
	created_at, created_by, updated_at, updated_by,
	deactivated_at, COALESCE(deactivated_by, ''), activated_at, COALESCE(activated_by, ''),
	version`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var deactivatedAt, activatedAt sql.NullTime
	err := row.Scan(
		&rec.PatientID,
		&rec.FirstName,
		&rec.LastName,
		&rec.DateOfBirth,
		&rec.Gender,
		&rec.Phone,
		&rec.Email,
		&rec.Address,
		&rec.City,
		&rec.State,
		&rec.ZipCode,
		&rec.EmergencyContactName,
		&rec.EmergencyContactPhone,
		&rec.EmergencyContactRelationship,
		&rec.BloodGroup,
		&rec.KnownAllergies,
		&rec.ChronicConditions,
		&rec.Status,
		&rec.CreatedAt,
		&rec.CreatedBy,
		&rec.UpdatedAt,
		&rec.UpdatedBy,
		&deactivatedAt,
		&rec.DeactivatedBy,
		&activatedAt,
		&rec.ActivatedBy,
		&rec.Version,
	)
	if err != nil {
		return nil, err
	}
	if deactivatedAt.Valid {
		t := deactivatedAt.Time
		rec.DeactivatedAt = &t
	}
	if activatedAt.Valid {
		t := activatedAt.Time
		rec.ActivatedAt = &t
	}
	return &rec, nil
}

// Create assigns the next patient id for the record's creation year and
// inserts the row in one serializable transaction. Lost races are retried.
func (r *Repository) Create(ctx context.Context, rec *Record) (*Record, error) {
	year := rec.CreatedAt.Year()

	var lastErr error
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		created, err := r.createOnce(ctx, rec, year)
		if err == nil {
			return created, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
		r.logger.Warn().Int("attempt", attempt).Err(err).Msg("patient id allocation conflict, retrying")
	}
	return nil, fmt.Errorf("failed to allocate patient id after %d attempts: %w", maxCreateAttempts, lastErr)
}

func (r *Repository) createOnce(ctx context.Context, rec *Record, year int) (*Record, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var counter int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(patient_id FROM 6) AS INTEGER)), 0)
		FROM patients
		WHERE patient_id LIKE $1
	`, idPrefix(year)+"%").Scan(&counter)
	if err != nil {
		return nil, fmt.Errorf("failed to read patient id counter: %w", err)
	}

	query := `
		INSERT INTO patients (
			patient_id, first_name, last_name, date_of_birth, gender, phone,
			email, address, city, state, zip_code,
			emergency_contact_name, emergency_contact_phone, emergency_contact_relationship,
			blood_group, known_allergies, chronic_conditions, status,
			created_at, created_by, updated_at, updated_by, version
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''),
			NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''),
			$15, NULLIF($16, ''), NULLIF($17, ''), $18,
			$19, $20, $19, $20, 0
		)
		RETURNING` + selectColumns

	created, err := scanRecord(tx.QueryRowContext(ctx, query,
		formatPatientID(year, counter+1),
		rec.FirstName,
		rec.LastName,
		rec.DateOfBirth,
		rec.Gender,
		rec.Phone,
		rec.Email,
		rec.Address,
		rec.City,
		rec.State,
		rec.ZipCode,
		rec.EmergencyContactName,
		rec.EmergencyContactPhone,
		rec.EmergencyContactRelationship,
		rec.BloodGroup,
		rec.KnownAllergies,
		rec.ChronicConditions,
		rec.Status,
		rec.CreatedAt,
		rec.CreatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit patient: %w", err)
	}
	return created, nil
}

func (r *Repository) Get(ctx context.Context, patientID string) (*Record, error) {
	query := `SELECT` + selectColumns + ` FROM patients WHERE patient_id = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, patientID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(patientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return rec, nil
}

// Search returns one page of patients, newest first, and the total match count.
func (r *Repository) Search(ctx context.Context, f SearchFilter) ([]Record, int, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(patient_id ILIKE $%[1]d OR first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR phone ILIKE $%[1]d OR email ILIKE $%[1]d)", n))
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Gender != "" {
		add("gender = $%d", f.Gender)
	}
	if f.BloodGroup != "" {
		add("blood_group = $%d", f.BloodGroup)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM patients"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := fmt.Sprintf(`SELECT%s FROM patients%s ORDER BY created_at DESC, patient_id DESC LIMIT $%d OFFSET $%d`,
		selectColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Size, f.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate patients: %w", err)
	}
	return records, total, nil
}

// Update writes every mutable column when the stored version still equals
// rec.Version, and bumps the version.
func (r *Repository) Update(ctx context.Context, rec *Record) (*Record, error) {
	query := `
		UPDATE patients SET
			first_name = $2, last_name = $3, date_of_birth = $4, gender = $5, phone = $6,
			email = NULLIF($7, ''), address = NULLIF($8, ''), city = NULLIF($9, ''),
			state = NULLIF($10, ''), zip_code = NULLIF($11, ''),
			emergency_contact_name = NULLIF($12, ''), emergency_contact_phone = NULLIF($13, ''),
			emergency_contact_relationship = NULLIF($14, ''),
			blood_group = $15, known_allergies = NULLIF($16, ''), chronic_conditions = NULLIF($17, ''),
			status = $18, updated_at = $19, updated_by = $20,
			deactivated_at = $21, deactivated_by = NULLIF($22, ''),
			activated_at = $23, activated_by = NULLIF($24, ''),
			version = version + 1
		WHERE patient_id = $1 AND version = $25
		RETURNING` + selectColumns

	updated, err := scanRecord(r.db.QueryRowContext(ctx, query,
		rec.PatientID,
		rec.FirstName,
		rec.LastName,
		rec.DateOfBirth,
		rec.Gender,
		rec.Phone,
		rec.Email,
		rec.Address,
		rec.City,
		rec.State,
		rec.ZipCode,
		rec.EmergencyContactName,
		rec.EmergencyContactPhone,
		rec.EmergencyContactRelationship,
		rec.BloodGroup,
		rec.KnownAllergies,
		rec.ChronicConditions,
		rec.Status,
		rec.UpdatedAt,
		rec.UpdatedBy,
		nullTime(rec.DeactivatedAt),
		rec.DeactivatedBy,
		nullTime(rec.ActivatedAt),
		rec.ActivatedBy,
		rec.Version,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.missingOrStale(ctx, rec.PatientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return updated, nil
}

// missingOrStale tells a deleted row apart from a version mismatch.
func (r *Repository) missingOrStale(ctx context.Context, patientID string) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE patient_id = $1)`, patientID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check patient: %w", err)
	}
	if !exists {
		return notFound(patientID)
	}
	return &Error{Kind: ErrConcurrentUpdate, Message: MsgConcurrentUpdate}
}

// PhoneExists reports whether another patient uses phone. excludeID may be
// empty.
func (r *Repository) PhoneExists(ctx context.Context, phone, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM patients WHERE phone = $1 AND patient_id <> $2)`,
		phone, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}
	return exists, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
