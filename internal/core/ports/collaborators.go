package ports

import (
	"context"
	"io"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

// MailMessage is a plain-text transactional email.
type MailMessage struct {
	To      string
	Subject string
	Text    string
}

// Mailer delivers a message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// Notifier hands a message off for best-effort background delivery.
type Notifier interface {
	Enqueue(msg MailMessage)
}

// UploadKind tells object storage which folder a file belongs in.
type UploadKind string

const (
	UploadPhoto    UploadKind = "photos"
	UploadDocument UploadKind = "documents"
)

// Upload is a single file received on a verification request.
type Upload struct {
	Kind        UploadKind
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectStorage stores a file and returns its public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, file Upload) (string, error)
}

// CashinRequest pulls Amount from the mobile-money wallet Number.
type CashinRequest struct {
	Amount float64
	Number string
}

// PaymentGateway is the external mobile-money processor.
type PaymentGateway interface {
	Cashin(ctx context.Context, req CashinRequest) (*domain.Payment, error)
}

// ResetThrottle limits how often a reset code may be mailed to one address.
type ResetThrottle interface {
	// Allow reports whether a new code may be sent to email now, and if so
	// starts the cooldown.
	Allow(ctx context.Context, email string) (bool, error)
	// Release ends the cooldown early, for when no code went out.
	Release(ctx context.Context, email string) error
}
