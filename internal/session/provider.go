package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// AuthError es un fallo de validación que se muestra tal cual al usuario
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var (
	ErrInvalidCredentials = &AuthError{Message: "Invalid email or password"}
	ErrEmailTaken         = &AuthError{Message: "User with this email already exists"}
	ErrMissingCredentials = &AuthError{Message: "Email and password are required"}
)

// Provider es el contrato de autenticación. Un backend real puede
// reemplazar al mock sin cambiar la máquina de estados.
type Provider interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
}

// account es un usuario conocido por el mock, con su contraseña
type account struct {
	user     models.User
	password string
}

// MockProvider reconoce cuentas en memoria y simula latencia de red
type MockProvider struct {
	mu       sync.RWMutex
	accounts []account
	latency  time.Duration
}

// Cuenta sembrada del storefront de demostración
const (
	DemoEmail    = "demo@flipkart.com"
	DemoPassword = "demo123"
)

// NewMockProvider siembra la cuenta demo
func NewMockProvider(latency time.Duration) *MockProvider {
	return &MockProvider{
		latency: latency,
		accounts: []account{
			{
				password: DemoPassword,
				user: models.User{
					ID:        "1",
					Email:     DemoEmail,
					FirstName: "John",
					LastName:  "Doe",
					Phone:     "+91 9876543210",
					Addresses: []models.Address{
						{
							ID:        1,
							Type:      "Home",
							Name:      "John Doe",
							Phone:     "+91 9876543210",
							Address:   "123 Main Street, Apartment 4B",
							City:      "Mumbai",
							State:     "Maharashtra",
							Pincode:   "400001",
							IsDefault: true,
						},
					},
				},
			},
		},
	}
}

// wait simula la latencia; respeta la cancelación del contexto
func (m *MockProvider) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(m.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *MockProvider) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := m.wait(ctx); err != nil {
		return nil, "", err
	}

	email = normalizeEmail(email)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.accounts {
		if strings.EqualFold(a.user.Email, email) && a.password == password {
			user := a.user
			return &user, newToken(), nil
		}
	}
	return nil, "", ErrInvalidCredentials
}

func (m *MockProvider) Signup(ctx context.Context, req models.SignupRequest) (*models.User, string, error) {
	if err := m.wait(ctx); err != nil {
		return nil, "", err
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", ErrMissingCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if strings.EqualFold(a.user.Email, email) {
			return nil, "", ErrEmailTaken
		}
	}

	user := models.User{
		ID:        uuid.New().String(),
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Addresses: []models.Address{},
	}
	m.accounts = append(m.accounts, account{user: user, password: req.Password})

	return &user, newToken(), nil
}

// Logout no tiene nada que invalidar en el mock
func (m *MockProvider) Logout(ctx context.Context, token string) error {
	return nil
}

// normalizeEmail recorta espacios; login y signup comparan además con
// strings.EqualFold
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// newToken genera un bearer opaco
func newToken() string {
	return uuid.New().String()
}
