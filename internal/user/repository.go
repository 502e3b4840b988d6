package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Repository persists investor accounts.
type Repository interface {
	Create(ctx context.Context, u User) error
	Get(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	UpdateVerification(ctx context.Context, id, state string) error
}

// PostgresRepository implements Repository using PostgreSQL. The optional
// sections live in nullable columns on the users row; the dashboard always
// reads the whole record.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, email_verified, mobile_number, mobile_verified,
        password_hash, date_of_birth, referral_code, verification_state, created_at, updated_at,
        address_line1, address_line2, city, state, pincode,
        pan_number, pan_attachment, aadhar_number, aadhar_front, aadhar_back,
        account_number, ifsc_code, branch_name, proof_attachment`

// Create inserts a new investor record.
func (r *PostgresRepository) Create(ctx context.Context, u User) error {
	userID, err := uuid.Parse(u.ID)
	if err != nil {
		return err
	}

	var (
		line1, line2, city, state, pincode          *string
		pan, panDoc, aadhar, aadharFront, aadharBck *string
		account, ifsc, branch, proof                *string
	)
	if u.Address != nil {
		line1, line2 = &u.Address.AddressLine1, nullable(u.Address.AddressLine2)
		city, state = nullable(u.Address.City), nullable(u.Address.State)
		pincode = &u.Address.Pincode
	}
	if u.Identity != nil {
		pan, panDoc = &u.Identity.PANNumber, &u.Identity.PANAttachment
		aadhar, aadharFront, aadharBck = &u.Identity.AadharNumber, &u.Identity.AadharFront, &u.Identity.AadharBack
	}
	if u.Bank != nil {
		account, ifsc = &u.Bank.AccountNumber, &u.Bank.IFSCCode
		branch, proof = &u.Bank.BranchName, &u.Bank.ProofAttachment
	}

	_, err = r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
                $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`,
		userID, u.FirstName, u.LastName, u.Email, u.EmailVerified, u.MobileNumber, u.MobileVerified,
		u.PasswordHash, u.DateOfBirth.UTC(), u.ReferralCode, u.VerificationState, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
		line1, line2, city, state, pincode,
		pan, panDoc, aadhar, aadharFront, aadharBck,
		account, ifsc, branch, proof)
	return err
}

// Get fetches a user by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// FindByEmail fetches a user by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// List returns all investors, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateVerification stores the admin's verification decision.
func (r *PostgresRepository) UpdateVerification(ctx context.Context, id, state string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET verification_state = $1, updated_at = NOW() WHERE id = $2`, state, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		id                   uuid.UUID
		dob, created, update time.Time
		u                    User

		line1, line2, city, state, pincode          *string
		pan, panDoc, aadhar, aadharFront, aadharBck *string
		account, ifsc, branch, proof                *string
	)
	if err := row.Scan(&id, &u.FirstName, &u.LastName, &u.Email, &u.EmailVerified, &u.MobileNumber, &u.MobileVerified,
		&u.PasswordHash, &dob, &u.ReferralCode, &u.VerificationState, &created, &update,
		&line1, &line2, &city, &state, &pincode,
		&pan, &panDoc, &aadhar, &aadharFront, &aadharBck,
		&account, &ifsc, &branch, &proof); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.ID = id.String()
	u.DateOfBirth = dob.UTC()
	u.CreatedAt = created.UTC()
	u.UpdatedAt = update.UTC()

	if line1 != nil {
		u.Address = &Address{
			AddressLine1: *line1,
			AddressLine2: deref(line2),
			City:         deref(city),
			State:        deref(state),
			Pincode:      deref(pincode),
		}
	}
	if pan != nil {
		u.Identity = &IdentityDetails{
			PANNumber:     *pan,
			PANAttachment: deref(panDoc),
			AadharNumber:  deref(aadhar),
			AadharFront:   deref(aadharFront),
			AadharBack:    deref(aadharBck),
		}
	}
	if account != nil {
		u.Bank = &BankDetails{
			AccountNumber:   *account,
			IFSCCode:        deref(ifsc),
			BranchName:      deref(branch),
			ProofAttachment: deref(proof),
		}
	}
	return u, nil
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
