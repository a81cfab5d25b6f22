package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tudman/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>فتوسنتز</title></head>
<body>
  <nav><a href="/">خانه</a></nav>
  <article>
    <h1>فتوسنتز</h1>
    <p>فتوسنتز فرایندی است که در آن گیاهان سبز با استفاده از نور خورشید، آب و دی‌اکسید کربن، گلوکز و اکسیژن تولید می‌کنند. این فرایند در کلروپلاست‌ها انجام می‌شود و کلروفیل نقش اصلی را در جذب نور دارد.</p>
    <p>مرحله‌ی نوری در غشای تیلاکوئید رخ می‌دهد و انرژی نور را به ATP و NADPH تبدیل می‌کند. مرحله‌ی تاریکی یا چرخه‌ی کالوین در استروما انجام می‌شود و از این مولکول‌ها برای تثبیت کربن استفاده می‌کند.</p>
    <p>عوامل محیطی مانند شدت نور، غلظت دی‌اکسید کربن و دما بر سرعت فتوسنتز اثر می‌گذارند و هر کدام می‌توانند عامل محدودکننده باشند.</p>
  </article>
</body>
</html>`

func newPageServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/article", http.StatusMovedPermanently)
			return
		}
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &userAgent
}

func TestExtractReadableText_Article(t *testing.T) {
	srv, userAgent := newPageServer(t, http.StatusOK, articlePage)
	e := NewReadabilityExtractor(srv.Client(), "tudman-test")

	text, err := e.ExtractReadableText(context.Background(), srv.URL+"/article")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "فتوسنتز\n\n"), "title should lead the extracted text")
	assert.Contains(t, text, "چرخه‌ی کالوین")
	assert.Equal(t, "tudman-test", *userAgent)
}

func TestExtractReadableText_FollowsRedirects(t *testing.T) {
	srv, _ := newPageServer(t, http.StatusOK, articlePage)
	e := NewReadabilityExtractor(srv.Client(), "")

	text, err := e.ExtractReadableText(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	assert.Contains(t, text, "کلروپلاست")
}

func TestExtractReadableText_NonSuccessStatus(t *testing.T) {
	srv, _ := newPageServer(t, http.StatusNotFound, "not found")
	e := NewReadabilityExtractor(srv.Client(), "")

	text, err := e.ExtractReadableText(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Empty(t, text)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrFetch, domainErr.Code)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractReadableText_EmptyPage(t *testing.T) {
	srv, _ := newPageServer(t, http.StatusOK, "<html><head></head><body></body></html>")
	e := NewReadabilityExtractor(srv.Client(), "")

	text, err := e.ExtractReadableText(context.Background(), srv.URL+"/empty")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractReadableText_Unreachable(t *testing.T) {
	e := NewReadabilityExtractor(nil, "")

	_, err := e.ExtractReadableText(context.Background(), "http://127.0.0.1:1/nothing")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrFetch, domainErr.Code)
}

func TestBodyText(t *testing.T) {
	e := NewReadabilityExtractor(nil, "")

	text, err := e.BodyText("<html><body><p>  سلام دنیا  </p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "سلام دنیا", text)
}
