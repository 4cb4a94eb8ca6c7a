package config

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/dwight"
)

// multipart and base64 framing on top of the raw upload
const uploadOverhead = 64 * 1024

// WebAppConfig is the slice of dwight.Config the HTTP layer needs.
type WebAppConfig struct {
	Web            dwight.WebConfig
	Metrics        dwight.MetricsConfig
	MaxUploadBytes int
	Version        string
}

func NewWebAppConfig(cfg *dwight.Config, version string) *WebAppConfig {
	return &WebAppConfig{
		Web:            cfg.Web,
		Metrics:        cfg.Metrics,
		MaxUploadBytes: cfg.Sounds.MaxUploadBytes,
		Version:        version,
	}
}

func (w *WebAppConfig) Address() string {
	return fmt.Sprintf("%s:%d", w.Web.Host, w.Web.Port)
}

// BodyLimit leaves room for a base64-encoded upload, which is a third larger than the file.
func (w *WebAppConfig) BodyLimit() int {
	return w.MaxUploadBytes*4/3 + uploadOverhead
}

func (w *WebAppConfig) AllowOrigins() string {
	if len(w.Web.AllowedOrigins) == 0 {
		return w.Web.FrontendURL
	}
	return strings.Join(w.Web.AllowedOrigins, ",")
}

// ApplyProxy makes c.IP() read the proxy header, but only for requests arriving from a
// trusted proxy.
func (w *WebAppConfig) ApplyProxy(fc *fiber.Config) {
	if len(w.Web.TrustedProxies) == 0 {
		return
	}
	fc.ProxyHeader = w.Web.ProxyHeader
	fc.EnableTrustedProxyCheck = true
	fc.TrustedProxies = w.Web.TrustedProxies
	fc.EnableIPValidation = true
}
