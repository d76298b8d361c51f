package cocktaildb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"BarInventory/internal/adapter"
	"BarInventory/internal/config"
	"BarInventory/internal/interfaces"
	"BarInventory/internal/model"
	"BarInventory/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// ProviderName is the catalog.provider value for TheCocktailDB.
const ProviderName = "cocktaildb"

// maxBody caps a filter.php answer; real answers are a few tens of KB.
const maxBody = 4 << 20

func init() {
	adapter.Register(ProviderName, NewCocktailDBAdapter)
}

type Adapter struct {
	cfg        *config.CatalogConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewCocktailDBAdapter(cfg *config.CatalogConfig, logger *logrus.Logger) (interfaces.CatalogLookup, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog.base_url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("catalog.base_url: %w", err)
	}
	client, err := httpclient.NewHTTPClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		cfg:        cfg,
		httpClient: client,
		logger:     logger,
	}, nil
}

func (a *Adapter) GetName() string {
	return "TheCocktailDB"
}

// DrinksByGlass calls {base_url}/{api_key}/filter.php?g={category}. The call is bounded by
// catalog.timeout even when ctx has no deadline.
func (a *Adapter) DrinksByGlass(ctx context.Context, category string) ([]model.CatalogDrink, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.filterURL(category), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", category, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.WithError(err).Warn("close catalog response failed")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", adapter.ErrMalformedResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", category, err)
	}

	drinks, err := adapter.DecodeDrinks(body)
	if err != nil {
		return nil, err
	}
	a.logger.WithFields(logrus.Fields{"glass": category, "drinks": len(drinks)}).Debug("catalog lookup ok")
	return drinks, nil
}

func (a *Adapter) filterURL(category string) string {
	base := strings.TrimRight(a.cfg.BaseURL, "/")
	q := url.Values{"g": []string{category}}
	return fmt.Sprintf("%s/%s/filter.php?%s", base, url.PathEscape(a.cfg.APIKey), q.Encode())
}
