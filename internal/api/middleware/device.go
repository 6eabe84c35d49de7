package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// DeviceCookie names the long-lived cookie identifying a browser.
	DeviceCookie = "console_device"
	deviceKey    = "device"
	deviceMaxAge = 365 * 24 * time.Hour
)

// Device makes sure every request carries a device id, issuing a new cookie
// when the browser has none or sent a malformed one. The id is the owner
// key of the browser's durable session record.
func Device(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(DeviceCookie); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     DeviceCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(deviceMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(deviceKey, id)
			return next(c)
		}
	}
}

// DeviceID returns the id set by Device, or "" outside it.
func DeviceID(c echo.Context) string {
	id, _ := c.Get(deviceKey).(string)
	return id
}
