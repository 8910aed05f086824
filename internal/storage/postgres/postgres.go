package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"smartBooking/internal/config"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) CreateEvent(ctx context.Context, p storage.CreateEventParams) (*models.Event, error) {
	const op = "storage.postgres.CreateEvent"

	query := `
		INSERT INTO events (title, description, location, date, total_seats, available_seats, price, img)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	event := models.Event{
		Title:          p.Title,
		Description:    p.Description,
		Location:       p.Location,
		Date:           p.Date,
		TotalSeats:     p.TotalSeats,
		AvailableSeats: p.AvailableSeats,
		Price:          p.Price,
		Img:            p.Img,
	}

	err := s.DB.QueryRowContext(ctx, query,
		p.Title,
		nullString(p.Description),
		p.Location,
		p.Date,
		p.TotalSeats,
		p.AvailableSeats,
		p.Price,
		nullString(p.Img),
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &event, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	const op = "storage.postgres.GetEvent"

	query := `
		SELECT id, title, description, location, date, total_seats, available_seats, price, img, created_at
		FROM events
		WHERE id = $1`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) GetAllEvents(ctx context.Context, filters storage.EventFilters) ([]models.Event, error) {
	const op = "storage.postgres.GetAllEvents"

	var conditions []string
	var args []any

	if filters.Location != "" {
		args = append(args, "%"+filters.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if !filters.Date.IsZero() {
		args = append(args, filters.Date)
		conditions = append(conditions, fmt.Sprintf("date::date = $%d::date", len(args)))
	}
	if filters.Query != "" {
		args = append(args, "%"+filters.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	query := `
		SELECT id, title, description, location, date, total_seats, available_seats, price, img, created_at
		FROM events`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, id int, p storage.UpdateEventParams) (*models.Event, error) {
	const op = "storage.postgres.UpdateEvent"

	var fields []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", nullString(*p.Description))
	}
	if p.Location != nil {
		set("location", *p.Location)
	}
	if p.Date != nil {
		set("date", *p.Date)
	}
	if p.TotalSeats != nil {
		set("total_seats", *p.TotalSeats)
	}
	if p.AvailableSeats != nil {
		set("available_seats", *p.AvailableSeats)
	}
	if p.Price != nil {
		set("price", *p.Price)
	}
	if p.Img != nil {
		set("img", nullString(*p.Img))
	}

	if len(fields) == 0 {
		return nil, storage.ErrNoUpdateFields
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE events SET %s WHERE id = $%d", strings.Join(fields, ", "), len(args))

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return nil, storage.ErrEventNotFound
	}

	return s.GetEvent(ctx, id)
}

// DeleteEvent removes an event together with its bookings. Bookings have no
// standalone delete path; they only die with their event.
func (s *Storage) DeleteEvent(ctx context.Context, id int) error {
	const op = "storage.postgres.DeleteEvent"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("%s: failed to delete bookings: %w", op, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete event: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrEventNotFound
	}

	return tx.Commit()
}

// CreateBooking atomically checks availability, decrements the event's seat
// counter and inserts the booking row. The event row is locked with
// SELECT ... FOR UPDATE for the whole read-check-decrement-insert sequence,
// so concurrent bookings on one event serialize and can never oversell;
// bookings on different events do not block each other. Either both the
// decrement and the insert commit, or neither does.
func (s *Storage) CreateBooking(ctx context.Context, p storage.CreateBookingParams) (*models.Booking, error) {
	const op = "storage.postgres.CreateBooking"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var price float64
	var available int

	lockQuery := `
		SELECT price, available_seats
		FROM events
		WHERE id = $1
		FOR UPDATE`

	err = tx.QueryRowContext(ctx, lockQuery, p.EventID).Scan(&price, &available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: failed to lock event: %w", op, err)
	}

	if available < p.Quantity {
		return nil, &storage.InsufficientSeatsError{Available: available}
	}

	// Price is frozen here: later event edits never change this booking.
	totalAmount := price * float64(p.Quantity)

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET available_seats = available_seats - $1 WHERE id = $2`,
		p.Quantity, p.EventID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to decrement seats: %w", op, err)
	}

	booking := models.Booking{
		Reference:   uuid.New(),
		EventID:     p.EventID,
		Name:        p.Name,
		Email:       p.Email,
		Mobile:      p.Mobile,
		Quantity:    p.Quantity,
		TotalAmount: totalAmount,
		Status:      models.BookingStatusConfirmed,
	}

	insertQuery := `
		INSERT INTO bookings (reference, event_id, name, email, mobile, quantity, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, insertQuery,
		booking.Reference,
		booking.EventID,
		booking.Name,
		booking.Email,
		nullString(booking.Mobile),
		booking.Quantity,
		booking.TotalAmount,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create booking: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return &booking, nil
}

func (s *Storage) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	const op = "storage.postgres.GetBooking"

	query := `
		SELECT id, reference, event_id, name, email, mobile, quantity, total_amount, status, created_at
		FROM bookings
		WHERE id = $1`

	booking, err := scanBooking(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return booking, nil
}

// GetAllBookings lists bookings newest first, optionally narrowed to one
// event. eventID 0 means all events.
func (s *Storage) GetAllBookings(ctx context.Context, eventID int) ([]models.Booking, error) {
	const op = "storage.postgres.GetAllBookings"

	query := `
		SELECT id, reference, event_id, name, email, mobile, quantity, total_amount, status, created_at
		FROM bookings`

	var args []any
	if eventID > 0 {
		query += " WHERE event_id = $1"
		args = append(args, eventID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, *booking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*models.Event, error) {
	var event models.Event
	var description, img sql.NullString

	err := row.Scan(
		&event.ID,
		&event.Title,
		&description,
		&event.Location,
		&event.Date,
		&event.TotalSeats,
		&event.AvailableSeats,
		&event.Price,
		&img,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Description = description.String
	event.Img = img.String

	return &event, nil
}

func scanBooking(row scanner) (*models.Booking, error) {
	var booking models.Booking
	var mobile sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.EventID,
		&booking.Name,
		&booking.Email,
		&mobile,
		&booking.Quantity,
		&booking.TotalAmount,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Mobile = mobile.String

	return &booking, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
