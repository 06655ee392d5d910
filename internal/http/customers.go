package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/service/customer"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type actionResp struct {
	model.CustomerJSON
	Action string `json:"action"`
}

func listCustomersHandler(svc *customer.Service, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.List(c.Request().Context(), filterFromQuery(c))
		if err != nil {
			return storeFailure(c, log, "list", 0, err)
		}
		return c.JSON(http.StatusOK, model.SerializeAll(list))
	}
}

func createCustomerHandler(svc *customer.Service, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return unreadableBody(c, err)
		}
		cu, err := model.Decode(body)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}

		if err := svc.Create(c.Request().Context(), &cu); err != nil {
			return storeFailure(c, log, "create", cu.ID, err)
		}

		c.Response().Header().Set(echo.HeaderLocation, absoluteURL(c, routeGetCustomer, cu.ID))
		return c.JSON(http.StatusCreated, cu.Serialize())
	}
}

func getCustomerHandler(svc *customer.Service, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		cu, raw, err := loadCustomer(c, svc)
		if err != nil {
			return lookupFailure(c, log, "get", raw, err)
		}
		return c.JSON(http.StatusOK, cu.Serialize())
	}
}

func updateCustomerHandler(svc *customer.Service, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		cu, raw, err := loadCustomer(c, svc)
		if err != nil {
			return lookupFailure(c, log, "update", raw, err)
		}

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return unreadableBody(c, err)
		}
		if err := cu.Deserialize(body); err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}

		if err := svc.Update(c.Request().Context(), cu); err != nil {
			return storeFailure(c, log, "update", cu.ID, err)
		}
		return c.JSON(http.StatusOK, cu.Serialize())
	}
}

func deleteCustomerHandler(svc *customer.Service, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Param("id")
		id, ok := parseID(raw)
		if !ok {
			return notFound(c, raw)
		}
		if err := svc.Delete(c.Request().Context(), id); err != nil {
			return storeFailure(c, log, "delete", id, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func actionHandler(svc *customer.Service, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		cu, raw, err := loadCustomer(c, svc)
		if err != nil {
			return lookupFailure(c, log, "action", raw, err)
		}

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return unreadableBody(c, err)
		}
		requested := model.ActionFromBody(body)
		action, ok := model.ParseAction(requested)
		if !ok {
			return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Action '%s' is not supported.", requested))
		}

		svc.Suspend(c.Request().Context(), cu)
		return c.JSON(http.StatusOK, actionResp{CustomerJSON: cu.Serialize(), Action: action.Result()})
	}
}

// filterFromQuery picks the first non-empty parameter in the order id, name,
// address, email, phonenumber.
func filterFromQuery(c echo.Context) customer.Filter {
	if raw := c.QueryParam("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return customer.Filter{Kind: customer.FilterNone}
		}
		return customer.Filter{Kind: customer.FilterByID, ID: id}
	}
	for _, f := range model.Fields {
		if v := c.QueryParam(f.String()); v != "" {
			return customer.Filter{Kind: customer.FilterByField, Field: f, Value: v}
		}
	}
	return customer.Filter{Kind: customer.FilterAll}
}

// parseID accepts non-negative decimal ids that fit in int64.
func parseID(raw string) (int64, bool) {
	n, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(n), true
}

// loadCustomer resolves the :id path parameter. The returned string is the id
// as it should appear in a not-found message.
func loadCustomer(c echo.Context, svc *customer.Service) (*model.Customer, string, error) {
	raw := c.Param("id")
	id, ok := parseID(raw)
	if !ok {
		return nil, raw, customer.ErrNotFound
	}
	cu, err := svc.Get(c.Request().Context(), id)
	return cu, strconv.FormatInt(id, 10), err
}

func lookupFailure(c echo.Context, log *zap.Logger, op, raw string, err error) error {
	if errors.Is(err, customer.ErrNotFound) {
		log.Info("customer not found", zap.String("op", op), zap.String("id", raw))
		return notFound(c, raw)
	}
	id, _ := parseID(raw)
	return storeFailure(c, log, op, id, err)
}

// unreadableBody passes echo errors (body limit) through to the error handler
// and reports any other read failure as a malformed body.
func unreadableBody(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return errorJSON(c, http.StatusBadRequest, (&model.ValidationError{Kind: model.MalformedBody, Err: err}).Error())
}
