// Package i18n translates the storefront's user-facing messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (Spanish, the shop's language).
	DefaultLocale = "es"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has its own messages.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale extracts the locale from the Accept-Language header, falling
// back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	return ParseLocale(c.GetHeader(AcceptLanguageHeader))
}

// ParseLocale picks the first language of an Accept-Language value
// (e.g. "en-US,en;q=0.9") when it is supported.
func ParseLocale(acceptLang string) string {
	if acceptLang == "" {
		return DefaultLocale
	}

	first := strings.Split(acceptLang, ",")[0]
	lang := strings.TrimSpace(strings.Split(first, ";")[0])
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)
	if GetTranslator().Supports(lang) {
		return lang
	}
	return DefaultLocale
}

func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"es": {
			ErrKeyInvalidRequest:     "Solicitud inválida",
			ErrKeyInvalidRequestBody: "Cuerpo de la solicitud inválido",
			ErrKeyInternalError:      "Ocurrió un error inesperado",
			ErrKeyUnauthorized:       "No autorizado",
			ErrKeyInvalidCredentials: "Usuario o contraseña incorrectos",
			ErrKeyForbidden:          "Se requiere rol de administrador",
			ErrKeyNotFound:           "No encontrado",
			ErrKeyRateLimitExceeded:  "Demasiadas solicitudes, intenta más tarde",
			ErrKeyConflict:           "Conflicto con el estado actual",
			ErrKeyInvalidToken:       "Token inválido o expirado",
			ErrKeyTokenRequired:      "Se requiere un token de sesión",
			ErrKeyTimeout:            "La solicitud tardó demasiado",
			ErrKeyUpstream:           "La tienda no respondió correctamente",
			ErrKeyUnavailable:        "La tienda no está disponible en este momento",
			ErrKeyLoginRequired:      "Debes iniciar sesión",
			ErrKeyNotCancellable:     "El pedido ya no puede cancelarse",
			ErrKeyAddressRequired:    "La dirección de envío es requerida",
			ErrKeyEmptyCart:          "El carrito está vacío",
			ErrKeyNoClientID:         "Tu cuenta no tiene perfil de recomendaciones",
			ErrKeyCartSync:           "No se pudo sincronizar el carrito",

			SuccessKeyLoggedOut:     "Sesión cerrada",
			SuccessKeyOrderPlaced:   "Pedido creado",
			SuccessKeyCartCleared:   "Carrito vaciado",
			SuccessKeySessionIssued: "Sesión iniciada",
		},
		"en": {
			ErrKeyInvalidRequest:     "Invalid request",
			ErrKeyInvalidRequestBody: "Invalid request body",
			ErrKeyInternalError:      "An unexpected error occurred",
			ErrKeyUnauthorized:       "Unauthorized",
			ErrKeyInvalidCredentials: "Wrong username or password",
			ErrKeyForbidden:          "Admin role required",
			ErrKeyNotFound:           "Not found",
			ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
			ErrKeyConflict:           "Conflict",
			ErrKeyInvalidToken:       "Invalid or expired token",
			ErrKeyTokenRequired:      "A session token is required",
			ErrKeyTimeout:            "The request took too long",
			ErrKeyUpstream:           "The shop did not respond correctly",
			ErrKeyUnavailable:        "The shop is unavailable right now",
			ErrKeyLoginRequired:      "You need to log in",
			ErrKeyNotCancellable:     "The order can no longer be cancelled",
			ErrKeyAddressRequired:    "Shipping address is required",
			ErrKeyEmptyCart:          "The cart is empty",
			ErrKeyNoClientID:         "Your account has no recommendation profile",
			ErrKeyCartSync:           "The cart could not be synchronised",

			SuccessKeyLoggedOut:     "Logged out",
			SuccessKeyOrderPlaced:   "Order placed",
			SuccessKeyCartCleared:   "Cart cleared",
			SuccessKeySessionIssued: "Session started",
		},
	}
}
