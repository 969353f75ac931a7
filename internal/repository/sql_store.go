package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pratham-associates/listings/internal/models"
)

// rowScanner is satisfied by pgx.Row and *sql.Row.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

type rowIterator interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close()
}

// sqlExecutor hides the difference between pgxpool and database/sql so both
// SQL backends share one set of statements.
type sqlExecutor interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) rowScanner
	Query(ctx context.Context, query string, args ...interface{}) (rowIterator, error)
	Exec(ctx context.Context, query string, args ...interface{}) error
	IsNoRows(err error) bool
}

// dialect carries what differs between SQL backends.
type dialect struct {
	name        string
	placeholder placeholderFunc
	schema      []string
}

// placeholders renders "$1, $2, ..." or "?, ?, ..." for n parameters.
func (d dialect) placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = d.placeholder(from + i)
	}
	return strings.Join(parts, ", ")
}

// newSQLStore builds a Store whose repositories all run through exec.
func newSQLStore(exec sqlExecutor, d dialect) *Store {
	return &Store{
		Properties:      &sqlPropertyRepository{exec: exec, d: d},
		Inquiries:       &sqlInquiryRepository{exec: exec, d: d},
		Recommendations: &sqlRecommendationRepository{exec: exec, d: d},
		Users:           &sqlUserRepository{exec: exec, d: d},
		driver:          d.name,
		migrate: func(ctx context.Context) error {
			for _, stmt := range d.schema {
				if err := exec.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("failed to migrate %s schema: %w", d.name, err)
				}
			}
			return nil
		},
	}
}

const propertyColumns = `id, title, description, price, price_type, property_type, bedrooms, bathrooms,
	area, location, sector, city, amenities, images, featured, available, contact_person, contact_phone`

type sqlPropertyRepository struct {
	exec sqlExecutor
	d    dialect
}

func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	var amenities, images []byte
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.PriceType,
		&p.PropertyType,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		&p.Location,
		&p.Sector,
		&p.City,
		&amenities,
		&images,
		&p.Featured,
		&p.Available,
		&p.ContactPerson,
		&p.ContactPhone,
	)
	if err != nil {
		return nil, err
	}
	if p.Amenities, err = decodeStrings(amenities); err != nil {
		return nil, fmt.Errorf("failed to decode amenities: %w", err)
	}
	if p.Images, err = decodeStrings(images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	return &p, nil
}

func (r *sqlPropertyRepository) queryProperties(ctx context.Context, query string, args ...interface{}) ([]models.Property, error) {
	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	out := make([]models.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating properties: %w", err)
	}
	return out, nil
}

func (r *sqlPropertyRepository) Create(ctx context.Context, in models.PropertyInput) (*models.Property, error) {
	p := models.NewProperty(0, in)
	amenities, err := encodeStrings(p.Amenities)
	if err != nil {
		return nil, err
	}
	images, err := encodeStrings(p.Images)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (title, description, price, price_type, property_type, bedrooms, bathrooms,
			area, location, sector, city, amenities, images, featured, available, contact_person, contact_phone)
		VALUES (%s)
		RETURNING %s`, r.d.placeholders(1, 17), propertyColumns)

	created, err := scanProperty(r.exec.QueryRow(ctx, query,
		p.Title, p.Description, p.Price, p.PriceType, p.PropertyType, nullable(p.Bedrooms), nullable(p.Bathrooms),
		p.Area, p.Location, p.Sector, p.City, amenities, images, p.Featured, p.Available, p.ContactPerson, p.ContactPhone,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}
	return created, nil
}

func (r *sqlPropertyRepository) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = %s`, propertyColumns, r.d.placeholder(1))

	p, err := scanProperty(r.exec.QueryRow(ctx, query, id))
	if err != nil {
		if r.exec.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property by id: %w", err)
	}
	return p, nil
}

func (r *sqlPropertyRepository) ListAvailable(ctx context.Context) ([]models.Property, error) {
	return r.Search(ctx, models.PropertyFilters{})
}

func (r *sqlPropertyRepository) ListFeatured(ctx context.Context) ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE available = TRUE AND featured = TRUE ORDER BY id`, propertyColumns)
	return r.queryProperties(ctx, query)
}

func (r *sqlPropertyRepository) Search(ctx context.Context, filters models.PropertyFilters) ([]models.Property, error) {
	where, args := applyFilters(filters, r.d.placeholder)
	query := fmt.Sprintf(`SELECT %s FROM properties %s ORDER BY id`, propertyColumns, where)

	rows, err := r.queryProperties(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return models.FilterProperties(rows, filters), nil
}

// Update runs as a single statement: every absent field is bound as NULL and
// COALESCE keeps the stored value.
func (r *sqlPropertyRepository) Update(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error) {
	var amenities, images interface{}
	if patch.Amenities != nil {
		s, err := encodeStrings(*patch.Amenities)
		if err != nil {
			return nil, err
		}
		amenities = s
	}
	if patch.Images != nil {
		s, err := encodeStrings(*patch.Images)
		if err != nil {
			return nil, err
		}
		images = s
	}

	columns := []string{
		"title", "description", "price", "price_type", "property_type", "bedrooms", "bathrooms",
		"area", "location", "sector", "city", "amenities", "images", "featured", "available",
		"contact_person", "contact_phone",
	}
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = fmt.Sprintf("%s = COALESCE(%s, %s)", col, r.d.placeholder(i+1), col)
	}

	query := fmt.Sprintf(`UPDATE properties SET %s WHERE id = %s RETURNING %s`,
		strings.Join(sets, ", "), r.d.placeholder(len(columns)+1), propertyColumns)

	p, err := scanProperty(r.exec.QueryRow(ctx, query,
		nullable(patch.Title), nullable(patch.Description), nullable(patch.Price), nullable(patch.PriceType),
		nullable(patch.PropertyType), nullable(patch.Bedrooms), nullable(patch.Bathrooms), nullable(patch.Area),
		nullable(patch.Location), nullable(patch.Sector), nullable(patch.City), amenities, images,
		nullable(patch.Featured), nullable(patch.Available), nullable(patch.ContactPerson), nullable(patch.ContactPhone),
		id,
	))
	if err != nil {
		if r.exec.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return p, nil
}

func (r *sqlPropertyRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.exec.QueryRow(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return n, nil
}

const inquiryColumns = `id, name, email, phone, property_type, message, property_id, status`

type sqlInquiryRepository struct {
	exec sqlExecutor
	d    dialect
}

func scanInquiry(row rowScanner) (*models.Inquiry, error) {
	var inq models.Inquiry
	err := row.Scan(
		&inq.ID,
		&inq.Name,
		&inq.Email,
		&inq.Phone,
		&inq.PropertyType,
		&inq.Message,
		&inq.PropertyID,
		&inq.Status,
	)
	if err != nil {
		return nil, err
	}
	return &inq, nil
}

func (r *sqlInquiryRepository) Create(ctx context.Context, in models.InquiryInput) (*models.Inquiry, error) {
	inq := models.NewInquiry(0, in)

	query := fmt.Sprintf(`
		INSERT INTO inquiries (name, email, phone, property_type, message, property_id, status)
		VALUES (%s)
		RETURNING %s`, r.d.placeholders(1, 7), inquiryColumns)

	created, err := scanInquiry(r.exec.QueryRow(ctx, query,
		inq.Name, inq.Email, inq.Phone, nullable(inq.PropertyType), inq.Message, nullable(inq.PropertyID), inq.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return created, nil
}

func (r *sqlInquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	rows, err := r.exec.Query(ctx, fmt.Sprintf(`SELECT %s FROM inquiries ORDER BY id`, inquiryColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	out := make([]models.Inquiry, 0)
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		out = append(out, *inq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inquiries: %w", err)
	}
	return out, nil
}

const recommendationColumns = `id, user_id, preferences, recommended_properties, confidence`

type sqlRecommendationRepository struct {
	exec sqlExecutor
	d    dialect
}

func scanRecommendation(row rowScanner) (*models.AiRecommendation, error) {
	var rec models.AiRecommendation
	var ids []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Preferences, &ids, &rec.Confidence); err != nil {
		return nil, err
	}
	var err error
	if rec.RecommendedProperties, err = decodeStrings(ids); err != nil {
		return nil, fmt.Errorf("failed to decode recommended properties: %w", err)
	}
	return &rec, nil
}

func (r *sqlRecommendationRepository) Create(ctx context.Context, in models.AiRecommendationInput) (*models.AiRecommendation, error) {
	rec := models.NewAiRecommendation(0, in)
	ids, err := encodeStrings(rec.RecommendedProperties)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO ai_recommendations (user_id, preferences, recommended_properties, confidence)
		VALUES (%s)
		RETURNING %s`, r.d.placeholders(1, 4), recommendationColumns)

	created, err := scanRecommendation(r.exec.QueryRow(ctx, query, rec.UserID, rec.Preferences, ids, rec.Confidence))
	if err != nil {
		return nil, fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return created, nil
}

func (r *sqlRecommendationRepository) ListByUser(ctx context.Context, userID string) ([]models.AiRecommendation, error) {
	query := fmt.Sprintf(`SELECT %s FROM ai_recommendations WHERE user_id = %s ORDER BY id`,
		recommendationColumns, r.d.placeholder(1))

	rows, err := r.exec.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	out := make([]models.AiRecommendation, 0)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recommendations: %w", err)
	}
	return out, nil
}

type sqlUserRepository struct {
	exec sqlExecutor
	d    dialect
}

func (r *sqlUserRepository) findOne(ctx context.Context, column string, arg interface{}) (*models.User, error) {
	query := fmt.Sprintf(`SELECT id, username, password FROM users WHERE %s = %s ORDER BY id LIMIT 1`,
		column, r.d.placeholder(1))

	var u models.User
	if err := r.exec.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Password); err != nil {
		if r.exec.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func (r *sqlUserRepository) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	query := fmt.Sprintf(`INSERT INTO users (username, password) VALUES (%s) RETURNING id, username, password`,
		r.d.placeholders(1, 2))

	var u models.User
	if err := r.exec.QueryRow(ctx, query, in.Username, in.Password).Scan(&u.ID, &u.Username, &u.Password); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &u, nil
}

func (r *sqlUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *sqlUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username", username)
}

// nullable binds an absent optional field as SQL NULL.
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// encodeStrings stores a list column as JSON text, never "null".
func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
