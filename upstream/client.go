package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/flowerstalk/storefront-gateway/models"
)

// Pagination is the paging metadata the API attaches to list responses.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
	Limit       int `json:"limit"`
}

// OrderQuery is the filter set accepted by the order list endpoints.
type OrderQuery struct {
	Page      int
	Limit     int
	Status    string
	Search    string
	StartDate string
	EndDate   string
}

func (q OrderQuery) params() map[string]string {
	p := map[string]string{}
	if q.Page > 0 {
		p["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		p["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Status != "" {
		p["status"] = q.Status
	}
	if q.Search != "" {
		p["search"] = q.Search
	}
	if q.StartDate != "" {
		p["startDate"] = q.StartDate
	}
	if q.EndDate != "" {
		p["endDate"] = q.EndDate
	}
	return p
}

// OrderReceipt is the result of a successful order submission. The
// shopper is redirected to PaymentLink to pay.
type OrderReceipt struct {
	Reference   string `json:"reference"`
	PaymentLink string `json:"paymentLink"`
}

// envelope is the response wrapper the API puts around everything.
// Status is a boolean on most endpoints and the string "success" on the
// catalog ones, hence the raw message.
type envelope struct {
	Status      json.RawMessage `json:"status"`
	Message     string          `json:"message"`
	Data        json.RawMessage `json:"data"`
	Pagination  *Pagination     `json:"pagination"`
	Reference   string          `json:"reference"`
	PaymentLink string          `json:"paymentLink"`
}

func (e *envelope) ok() bool {
	s := strings.TrimSpace(string(e.Status))
	return s == "" || s == "true" || s == `"success"`
}

// Client is the typed client for the remote storefront API. It carries
// no credentials of its own; bearer tokens are passed per call and
// forwarded untouched.
type Client struct {
	http  *resty.Client
	cache *Cache
	log   zerolog.Logger
}

// NewClient builds a client for the API at baseURL. cache may be nil.
func NewClient(baseURL string, cache *Cache, log zerolog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(15 * time.Second).
			SetHeader("Accept", "application/json"),
		cache: cache,
		log:   log,
	}
}

// do runs one request and folds the outcome into the error taxonomy:
// 404 is a definitive not-found, other 4xx are preconditions carrying
// the server's message, 5xx and transport failures are transient. A 2xx
// whose envelope says status=false is also a precondition; the API uses
// that shape for some validation failures.
func (c *Client) do(op string, req *resty.Request, method, path string) (*envelope, error) {
	var resp *resty.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = req.Get(path)
	case http.MethodPost:
		resp, err = req.Post(path)
	case http.MethodPut:
		resp, err = req.Put(path)
	case http.MethodPatch:
		resp, err = req.Patch(path)
	case http.MethodDelete:
		resp, err = req.Delete(path)
	default:
		return nil, fmt.Errorf("upstream %s: unsupported method %s", op, method)
	}
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("upstream request failed")
		return nil, &TransientError{Op: op, Err: err}
	}

	var env envelope
	if len(resp.Body()) > 0 {
		// A non-JSON body from a proxy or load balancer is treated the
		// same as an empty one.
		_ = json.Unmarshal(resp.Body(), &env)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode() >= http.StatusInternalServerError:
		c.log.Warn().Int("status", resp.StatusCode()).Str("op", op).Msg("upstream server error")
		return nil, &TransientError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode())}
	case resp.IsError():
		msg := env.Message
		if msg == "" {
			msg = "The request was rejected"
		}
		return nil, &PreconditionError{Message: msg}
	case !env.ok():
		msg := env.Message
		if msg == "" {
			msg = "The request was rejected"
		}
		return nil, &PreconditionError{Message: msg}
	}
	return &env, nil
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// --- Catalog ---

// ListItems fetches a catalog page. Pages are cached when a cache is
// configured.
func (c *Client) ListItems(ctx context.Context, page, limit int) ([]models.Product, *Pagination, error) {
	key := cacheKey("items", fmt.Sprintf("%d:%d", page, limit))
	if body, hit := c.cache.Get(ctx, key); hit {
		var cached struct {
			Data       []models.Product `json:"data"`
			Pagination *Pagination      `json:"pagination"`
		}
		if err := json.Unmarshal([]byte(body), &cached); err == nil {
			return cached.Data, cached.Pagination, nil
		}
	}

	req := c.request(ctx, "").SetQueryParams(map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	})
	env, err := c.do("list items", req, http.MethodGet, "/items")
	if err != nil {
		return nil, nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, nil, &TransientError{Op: "list items", Err: err}
	}
	if cached, err := json.Marshal(map[string]any{"data": products, "pagination": env.Pagination}); err == nil {
		c.cache.Set(ctx, key, string(cached))
	}
	return products, env.Pagination, nil
}

// GetItem fetches a single catalog item.
func (c *Client) GetItem(ctx context.Context, id string) (*models.Product, error) {
	env, err := c.do("get item", c.request(ctx, ""), http.MethodGet, "/items/"+id)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(env.Data, &product); err != nil {
		return nil, &TransientError{Op: "get item", Err: err}
	}
	return &product, nil
}

// ListLocations fetches the serviced delivery locations, cached when a
// cache is configured.
func (c *Client) ListLocations(ctx context.Context) ([]models.DeliveryLocation, error) {
	key := cacheKey("locations", "")
	if body, hit := c.cache.Get(ctx, key); hit {
		var cached []models.DeliveryLocation
		if err := json.Unmarshal([]byte(body), &cached); err == nil {
			return cached, nil
		}
	}

	env, err := c.do("list locations", c.request(ctx, ""), http.MethodGet, "/locations")
	if err != nil {
		return nil, err
	}
	var locations []models.DeliveryLocation
	if err := json.Unmarshal(env.Data, &locations); err != nil {
		return nil, &TransientError{Op: "list locations", Err: err}
	}
	if cached, err := json.Marshal(locations); err == nil {
		c.cache.Set(ctx, key, string(cached))
	}
	return locations, nil
}

// CreateLocation adds a serviced location on behalf of an admin.
func (c *Client) CreateLocation(ctx context.Context, token, name string, fee int) error {
	req := c.request(ctx, token).SetBody(map[string]any{"location": name, "amount": fee})
	if _, err := c.do("create location", req, http.MethodPost, "/locations"); err != nil {
		return err
	}
	c.cache.Delete(ctx, cacheKey("locations", ""))
	return nil
}

// UpdateLocation edits a serviced location's name or fee.
func (c *Client) UpdateLocation(ctx context.Context, token, locationID, name string, fee int) error {
	req := c.request(ctx, token).SetBody(map[string]any{"location": name, "amount": fee})
	if _, err := c.do("update location", req, http.MethodPut, "/locations/"+locationID); err != nil {
		return err
	}
	c.cache.Delete(ctx, cacheKey("locations", ""))
	return nil
}

// DeleteLocation removes a serviced location.
func (c *Client) DeleteLocation(ctx context.Context, token, locationID string) error {
	if _, err := c.do("delete location", c.request(ctx, token), http.MethodDelete, "/locations/"+locationID); err != nil {
		return err
	}
	c.cache.Delete(ctx, cacheKey("locations", ""))
	return nil
}

// --- Orders ---

// CreateOrder submits a checkout payload. A response without a payment
// link counts as a failure even on 2xx; the cart must survive it.
func (c *Client) CreateOrder(ctx context.Context, payload any) (*OrderReceipt, error) {
	req := c.request(ctx, "").SetBody(payload)
	env, err := c.do("create order", req, http.MethodPost, "/orders/create")
	if err != nil {
		return nil, err
	}
	if env.PaymentLink == "" {
		return nil, &TransientError{Op: "create order", Err: fmt.Errorf("payment link missing from response")}
	}
	return &OrderReceipt{Reference: env.Reference, PaymentLink: env.PaymentLink}, nil
}

// TrackOrder looks an order up by its customer-facing reference.
func (c *Client) TrackOrder(ctx context.Context, reference string) (*models.Order, error) {
	env, err := c.do("track order", c.request(ctx, ""), http.MethodGet, "/orders/track/"+reference)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		return nil, &TransientError{Op: "track order", Err: err}
	}
	return &order, nil
}

// GetOrder fetches one order on behalf of an admin.
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	env, err := c.do("get order", c.request(ctx, token), http.MethodGet, "/orders/"+orderID)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		return nil, &TransientError{Op: "get order", Err: err}
	}
	return &order, nil
}

// ListOrders fetches a page of orders on behalf of an admin.
func (c *Client) ListOrders(ctx context.Context, token string, q OrderQuery) ([]models.Order, *Pagination, error) {
	req := c.request(ctx, token).SetQueryParams(q.params())
	env, err := c.do("list orders", req, http.MethodGet, "/orders")
	if err != nil {
		return nil, nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		return nil, nil, &TransientError{Op: "list orders", Err: err}
	}
	return orders, env.Pagination, nil
}

// AcceptOrder moves a pending order to accepted.
func (c *Client) AcceptOrder(ctx context.Context, token, orderID string) error {
	req := c.request(ctx, token).SetBody(map[string]string{"orderId": orderID})
	_, err := c.do("accept order", req, http.MethodPost, "/orders/accept-order")
	return err
}

// AssignRider attaches a rider to an accepted order.
func (c *Client) AssignRider(ctx context.Context, token, orderID, riderID string) error {
	req := c.request(ctx, token).SetBody(map[string]string{"orderId": orderID, "riderId": riderID})
	_, err := c.do("assign rider", req, http.MethodPost, "/orders/assign-order-rider")
	return err
}

// CancelOrder cancels a non-terminal order.
func (c *Client) CancelOrder(ctx context.Context, token, orderID string) error {
	req := c.request(ctx, token).SetBody(map[string]string{
		"orderId": orderID,
		"status":  string(models.StatusCancelled),
	})
	_, err := c.do("cancel order", req, http.MethodPost, "/orders/status-update")
	return err
}

// --- Riders (admin dashboard) ---

// ListRiders fetches a page of delivery partners.
func (c *Client) ListRiders(ctx context.Context, token string, page, limit int) ([]models.Rider, *Pagination, error) {
	req := c.request(ctx, token).SetQueryParams(map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	})
	env, err := c.do("list riders", req, http.MethodGet, "/dashboard/list-riders")
	if err != nil {
		return nil, nil, err
	}
	var riders []models.Rider
	if err := json.Unmarshal(env.Data, &riders); err != nil {
		return nil, nil, &TransientError{Op: "list riders", Err: err}
	}
	return riders, env.Pagination, nil
}

// FindRider locates one rider by id. The dashboard API has no single-
// rider endpoint, so this scans the list the same way the admin UI
// does.
func (c *Client) FindRider(ctx context.Context, token, riderID string) (*models.Rider, error) {
	page := 1
	for {
		riders, pagination, err := c.ListRiders(ctx, token, page, 200)
		if err != nil {
			return nil, err
		}
		for _, r := range riders {
			if r.ID == riderID {
				return &r, nil
			}
		}
		if pagination == nil || page >= pagination.TotalPages || len(riders) == 0 {
			return nil, ErrNotFound
		}
		page++
	}
}

// ApproveRejectRider sets a rider's approval status.
func (c *Client) ApproveRejectRider(ctx context.Context, token, riderID, status string) error {
	req := c.request(ctx, token).SetBody(map[string]string{"riderId": riderID, "status": status})
	_, err := c.do("approve rider", req, http.MethodPost, "/dashboard/approve-reject-rider")
	return err
}

// --- Rider surface ---

// RiderIncomingOrders fetches the orders assigned to the calling rider.
func (c *Client) RiderIncomingOrders(ctx context.Context, token string, q OrderQuery) ([]models.Order, *Pagination, error) {
	req := c.request(ctx, token).SetQueryParams(q.params())
	env, err := c.do("rider orders", req, http.MethodGet, "/rider/orders/incoming-orders")
	if err != nil {
		return nil, nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		return nil, nil, &TransientError{Op: "rider orders", Err: err}
	}
	return orders, env.Pagination, nil
}

// RiderGetOrder fetches one of the rider's orders.
func (c *Client) RiderGetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	env, err := c.do("rider get order", c.request(ctx, token), http.MethodGet, "/rider/orders/"+orderID)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		return nil, &TransientError{Op: "rider get order", Err: err}
	}
	return &order, nil
}

// RiderAcceptOrder is the dedicated endpoint for the first rider
// transition; every later one goes through RiderUpdateStatus.
func (c *Client) RiderAcceptOrder(ctx context.Context, token, orderID string) error {
	req := c.request(ctx, token).SetBody(map[string]string{"orderId": orderID})
	_, err := c.do("rider accept order", req, http.MethodPost, "/rider/orders/accept-order")
	return err
}

// RiderUpdateStatus advances an order to the given status.
func (c *Client) RiderUpdateStatus(ctx context.Context, token, orderID string, status models.OrderStatus) error {
	req := c.request(ctx, token).SetBody(map[string]string{
		"orderId": orderID,
		"status":  string(status),
	})
	_, err := c.do("rider update status", req, http.MethodPost, "/rider/orders/status-update")
	return err
}
