package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Buddhisha1997/linkshoter/models"
	"github.com/Buddhisha1997/linkshoter/repository"
	"github.com/Buddhisha1997/linkshoter/shortcode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// expiryLayout is the HTML datetime-local format; it carries no zone and is
// parsed as UTC.
const expiryLayout = "2006-01-02T15:04"

// maxCodeAttempts bounds how many fresh codes are drawn when inserts keep
// hitting taken ones.
const maxCodeAttempts = 5

type createLinkForm struct {
	URL        string `form:"url" binding:"required"`
	ExpiryDate string `form:"expiry_date"`
	expiryDate *time.Time
}

// parseExpiry fills expiryDate from the optional form field. An empty field
// means the link never expires.
func (f *createLinkForm) parseExpiry() error {
	if f.ExpiryDate == "" {
		return nil
	}
	ts, err := time.Parse(expiryLayout, f.ExpiryDate)
	if err != nil {
		return err
	}
	f.expiryDate = &ts
	return nil
}

type LinksController struct {
	DB      repository.Repository
	Log     *zap.Logger
	BaseURL string
}

func (l LinksController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"stats": l.stats(c)})
}

func (l LinksController) Create(c *gin.Context) {
	var form createLinkForm
	if err := c.ShouldBind(&form); err != nil {
		l.Log.Warn("invalid request", zap.Error(err))
		l.renderError(c, http.StatusBadRequest, "URL is required")
		return
	}
	if err := form.parseExpiry(); err != nil {
		l.Log.Warn("invalid expiry date", zap.Error(err))
		l.renderError(c, http.StatusBadRequest, "Invalid expiry date")
		return
	}

	link, err := l.createWithFreshCode(c.Request.Context(), form.URL, form.expiryDate)
	if err != nil {
		l.Log.Error("failed to create link", zap.Error(err))
		l.renderError(c, http.StatusInternalServerError, "Could not create the short link")
		return
	}
	l.Log.Debug("created link", zap.String("code", link.ShortCode))

	c.HTML(http.StatusOK, "index.html", gin.H{
		"short_url":    fmt.Sprintf("%s/%s", l.BaseURL, link.ShortCode),
		"original_url": link.OriginalURL,
		"stats":        l.stats(c),
	})
}

// createWithFreshCode inserts the link under a newly generated code, drawing
// again whenever the code turns out to be taken.
func (l LinksController) createWithFreshCode(ctx context.Context, originalURL string, expiry *time.Time) (*models.Link, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		link := &models.Link{
			OriginalURL: originalURL,
			ShortCode:   shortcode.Generate(),
			ExpiryDate:  expiry,
		}
		err := l.DB.CreateLink(ctx, link)
		if err == nil {
			return link, nil
		}
		if errors.Is(err, repository.ErrDuplicateCode) {
			l.Log.Warn("short code already taken, drawing a new one",
				zap.String("code", link.ShortCode))
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("no unused short code after %d attempts", maxCodeAttempts)
}

func (l LinksController) Redirect(c *gin.Context) {
	code := c.Param("code")

	// Every visit is recorded, including visits to codes that never
	// existed. A failed insert must not break the redirect itself.
	click := &models.Click{
		ShortCode: code,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := l.DB.RecordClick(c.Request.Context(), click); err != nil {
		l.Log.Error("failed to record click", zap.String("code", code), zap.Error(err))
	}

	// Codes that Generate could never produce are never stored, so skip
	// the lookup for those.
	if err := shortcode.Validate(code); err != nil {
		l.renderError(c, http.StatusNotFound, "URL not found")
		return
	}

	link, err := l.DB.GetLinkByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			l.renderError(c, http.StatusNotFound, "URL not found")
			return
		}
		l.Log.Error("failed to look up link", zap.String("code", code), zap.Error(err))
		l.renderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if link.Expired(time.Now().UTC()) {
		l.renderError(c, http.StatusGone, "This URL has expired")
		return
	}

	c.Redirect(http.StatusFound, link.OriginalURL)
}

func (l LinksController) AllLinks(c *gin.Context) {
	links, err := l.DB.ListLinks(c.Request.Context())
	if err != nil {
		l.Log.Error("failed to list links", zap.Error(err))
		l.renderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.HTML(http.StatusOK, "all_links.html", gin.H{
		"links": links,
		"stats": l.stats(c),
	})
}

func (l LinksController) ClickDetails(c *gin.Context) {
	code := c.Param("code")

	link, err := l.DB.GetLinkByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			l.renderError(c, http.StatusNotFound, "URL not found")
			return
		}
		l.Log.Error("failed to look up link", zap.String("code", code), zap.Error(err))
		l.renderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	clicks, err := l.DB.ClicksByCode(c.Request.Context(), code)
	if err != nil {
		l.Log.Error("failed to load click history", zap.String("code", code), zap.Error(err))
		l.renderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.HTML(http.StatusOK, "click_details.html", gin.H{
		"link":         link,
		"clicks":       clicks,
		"total_clicks": len(clicks),
		"stats":        l.stats(c),
	})
}

// stats loads the aggregate counters shown in every page footer. Pages still
// render when the counters cannot be loaded.
func (l LinksController) stats(c *gin.Context) *repository.SystemStats {
	stats, err := l.DB.Stats(c.Request.Context())
	if err != nil {
		l.Log.Warn("failed to load stats", zap.Error(err))
		return &repository.SystemStats{}
	}
	return stats
}

func (l LinksController) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"status":  status,
		"message": message,
		"stats":   l.stats(c),
	})
}
