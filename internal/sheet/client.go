// Package sheet is the typed client for the spreadsheet endpoint: one
// function per business operation, each swallowing network and parse
// errors into nil/false results. Reads come back as a normalized
// Snapshot; writes are form posts the Apps Script understands.
package sheet

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/normalize"
	"baketrack-backend/internal/relay"
	"baketrack-backend/internal/settings"
)

// Form action discriminators defined by the Apps Script contract.
const (
	actionManageTransaction = "manageTransaction"
	actionManageProduct     = "manageProduct"
	actionUpdateProfile     = "updateProfile"
)

type Client struct {
	relay    *relay.Client
	settings *settings.Store
	log      *logrus.Logger
}

func NewClient(relayClient *relay.Client, store *settings.Store, log *logrus.Logger) *Client {
	return &Client{
		relay:    relayClient,
		settings: store,
		log:      log,
	}
}

// baseURL resolves the endpoint on every call. The wizard can change it at
// runtime, so it is never cached here.
func (c *Client) baseURL() string {
	return c.settings.ScriptURL()
}

// FetchFullData pulls the whole dashboard dataset. Returns nil without
// touching the network when no endpoint is configured, and nil on any
// fetch or parse failure; the previous snapshot stays in use either way.
func (c *Client) FetchFullData(ctx context.Context) *model.Snapshot {
	base := c.baseURL()
	if base == "" {
		c.log.Debug("sheet: fetch skipped, endpoint not configured")
		return nil
	}

	out := c.relay.Get(ctx, relay.AppendQuery(base, "action=getData"))
	if out.Status != 200 {
		c.log.WithFields(logrus.Fields{"status": out.Status, "error": out.ErrMsg}).Warn("sheet: fetch failed")
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(out.JSON, &raw); err != nil {
		c.log.WithError(err).Warn("sheet: getData payload is not an object")
		return nil
	}
	return normalize.Snapshot(raw)
}

func (c *Client) post(ctx context.Context, form url.Values) bool {
	base := c.baseURL()
	if base == "" {
		c.log.Warn("sheet: write skipped, endpoint not configured")
		return false
	}
	if err := c.relay.PostForm(ctx, base, form); err != nil {
		c.log.WithError(err).WithField("action", form.Get("action")).Error("sheet: write failed")
		return false
	}
	return true
}

// SubmitTransaction creates or updates one sale row. The total is always
// recomputed from qty and price before sending; a stale caller total never
// reaches the sheet. A missing id is synthesized from the current time.
func (c *Client) SubmitTransaction(ctx context.Context, tx model.Transaction, isUpdate bool) bool {
	tx.EnsureID()
	tx.RecomputeTotal()

	subAction := "create"
	if isUpdate {
		subAction = "update"
	}

	form := url.Values{}
	form.Set("action", actionManageTransaction)
	form.Set("subAction", subAction)
	form.Set("id", tx.ID)
	form.Set("date", tx.Date)
	form.Set("product", tx.Product)
	form.Set("qty", strconv.Itoa(tx.Qty))
	form.Set("price", formatNumber(tx.Price))
	form.Set("total", formatNumber(tx.Total))
	form.Set("addedBy", tx.AddedBy)
	return c.post(ctx, form)
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) bool {
	form := url.Values{}
	form.Set("action", actionManageTransaction)
	form.Set("subAction", "delete")
	form.Set("id", id)
	return c.post(ctx, form)
}

// ManageProduct covers create/update/delete on the catalog sheet. For
// updates only the fields the Apps Script recognizes are sent; zero-valued
// numerics still go out because the sheet treats them as real values.
func (c *Client) ManageProduct(ctx context.Context, action model.ManageAction, product model.Product) bool {
	form := url.Values{}
	form.Set("action", actionManageProduct)
	form.Set("subAction", string(action))
	form.Set("id", strconv.Itoa(product.ID))
	form.Set("name", product.Name)
	form.Set("price", formatNumber(product.Price))
	form.Set("stock", strconv.Itoa(product.Stock))
	form.Set("sold", strconv.Itoa(product.Sold))
	form.Set("cost", formatNumber(product.Cost))
	form.Set("image", product.Image)
	return c.post(ctx, form)
}

func (c *Client) UpdateProfile(ctx context.Context, profile model.Profile) bool {
	form := url.Values{}
	form.Set("action", actionUpdateProfile)
	form.Set("name", profile.Name)
	form.Set("email", profile.Email)
	form.Set("photoUrl", profile.PhotoURL)
	return c.post(ctx, form)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
