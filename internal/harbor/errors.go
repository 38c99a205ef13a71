package harbor

import "fmt"

// AuthError betyr at Harbor avviste credentials (HTTP 401/403). Alltid fatal.
type AuthError struct {
	StatusCode int
	Path       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("autentisering mot Harbor feilet for %s: status %d", e.Path, e.StatusCode)
}

// APIError er et uventet ikke-2xx-svar. Body tas med for feilsøking.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Harbor API-feil for %s: status %d – %s", e.Path, e.StatusCode, e.Body)
}

// TransportError er en nettverks-, timeout- eller dekodingsfeil. Alltid fatal.
type TransportError struct {
	Path    string
	Wrapped error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("nettverksfeil mot Harbor for %s: %v", e.Path, e.Wrapped)
}

func (e *TransportError) Unwrap() error {
	return e.Wrapped
}
