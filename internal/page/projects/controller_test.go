package projects_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mkaranja/freelancecrm/internal/page"
	"github.com/mkaranja/freelancecrm/internal/page/projects"
)

var errServer = errors.New("boom")

type fakeAPI struct {
	list       []projects.Project
	listErr    error
	clients    []projects.ClientRef
	clientsErr error

	created   projects.Project
	createErr error
	creates   []map[string]any

	patchErr error
	patches  []map[string]any

	deleteErr error
	deletes   []int64
}

func (f *fakeAPI) List(ctx context.Context) ([]projects.Project, error) {
	return f.list, f.listErr
}

func (f *fakeAPI) ListClients(ctx context.Context) ([]projects.ClientRef, error) {
	return f.clients, f.clientsErr
}

func (f *fakeAPI) Create(ctx context.Context, payload map[string]any) (projects.Project, error) {
	f.creates = append(f.creates, payload)
	return f.created, f.createErr
}

func (f *fakeAPI) Patch(ctx context.Context, id int64, fields map[string]any) error {
	f.patches = append(f.patches, fields)
	return f.patchErr
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) error {
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

func loaded(t *testing.T, api *fakeAPI) *projects.Controller {
	t.Helper()
	ctrl := projects.NewController(api, nil)
	require.NoError(t, ctrl.Load(context.Background()))
	return ctrl
}

func TestController_Load_JoinsClientDirectory(t *testing.T) {
	api := &fakeAPI{
		list:    []projects.Project{{ID: 1, Title: "Site", Client: 7}},
		clients: []projects.ClientRef{{ID: 7, Name: "Acme Inc."}},
	}
	ctrl := loaded(t, api)

	require.Equal(t, page.StatusLoaded, ctrl.Status())
	require.Equal(t, "Acme Inc.", ctrl.ClientName(7))
	require.Empty(t, ctrl.ClientName(99))
}

func TestController_Load_AllOrFail(t *testing.T) {
	api := &fakeAPI{
		list:       []projects.Project{{ID: 1}},
		clientsErr: errServer,
	}
	ctrl := projects.NewController(api, nil)

	err := ctrl.Load(context.Background())
	require.Error(t, err)
	require.Equal(t, page.StatusLoadFailed, ctrl.Status())
	require.Equal(t, "Failed to load projects or clients.", ctrl.Err())
	require.Zero(t, ctrl.Len())
}

func TestController_Create_Success(t *testing.T) {
	api := &fakeAPI{
		list:    []projects.Project{{ID: 1}},
		created: projects.Project{ID: 2, Title: "New Site", Status: projects.StatusActive},
	}
	ctrl := loaded(t, api)

	form := projects.DefaultForm()
	form.Title = "New Site"
	form.Client = 7
	ctrl.SetForm(form)

	created, err := ctrl.Create(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), created.ID)

	items := ctrl.Items()
	require.Equal(t, int64(2), items[0].ID)
	require.Equal(t, 2, len(items))

	// New projects go to the server active with a concrete start date.
	require.Len(t, api.creates, 1)
	require.Equal(t, "active", api.creates[0]["status"])
	require.NotEmpty(t, api.creates[0]["start_date"])
	require.Nil(t, api.creates[0]["due_date"])
}

func TestController_Create_RequiresClient(t *testing.T) {
	api := &fakeAPI{}
	ctrl := loaded(t, api)

	form := projects.DefaultForm()
	form.Title = "No Client"
	ctrl.SetForm(form)

	_, err := ctrl.Create(context.Background())
	require.Error(t, err)
	require.Empty(t, api.creates)
	require.NotEmpty(t, ctrl.Err())
}

func TestController_SetStatus_FailureRollsBack(t *testing.T) {
	api := &fakeAPI{
		list:     []projects.Project{{ID: 1, Status: projects.StatusActive}},
		patchErr: errServer,
	}
	ctrl := loaded(t, api)

	err := ctrl.SetStatus(context.Background(), 1, projects.StatusCompleted)
	require.Error(t, err)

	got, _ := ctrl.Find(1)
	require.Equal(t, projects.StatusActive, got.Status)
	require.Equal(t, "Failed to update project.", ctrl.Err())
}

func TestController_ConfirmStatusToggle(t *testing.T) {
	api := &fakeAPI{list: []projects.Project{
		{ID: 1, Status: projects.StatusActive},
		{ID: 2, Status: projects.StatusCompleted},
		{ID: 3, Status: projects.StatusOnHold},
	}}
	ctrl := loaded(t, api)

	require.True(t, ctrl.RequestStatusChange(1))
	require.NoError(t, ctrl.ConfirmStatusToggle(context.Background(), 1))
	got, _ := ctrl.Find(1)
	require.Equal(t, projects.StatusCompleted, got.Status)

	require.True(t, ctrl.RequestStatusChange(2))
	require.NoError(t, ctrl.ConfirmStatusToggle(context.Background(), 2))
	got, _ = ctrl.Find(2)
	require.Equal(t, projects.StatusActive, got.Status)

	// On hold counts as not completed, so toggling completes it.
	require.True(t, ctrl.RequestStatusChange(3))
	require.NoError(t, ctrl.ConfirmStatusToggle(context.Background(), 3))
	got, _ = ctrl.Find(3)
	require.Equal(t, projects.StatusCompleted, got.Status)
}

func TestController_ConfirmStatusToggle_WithoutRequestIsNoOp(t *testing.T) {
	api := &fakeAPI{list: []projects.Project{{ID: 1, Status: projects.StatusActive}}}
	ctrl := loaded(t, api)

	require.NoError(t, ctrl.ConfirmStatusToggle(context.Background(), 1))
	require.Empty(t, api.patches)
	got, _ := ctrl.Find(1)
	require.Equal(t, projects.StatusActive, got.Status)
}

func TestController_SavePayment_SendsAmountAndCurrencyTogether(t *testing.T) {
	api := &fakeAPI{list: []projects.Project{{ID: 1, PaymentCurrency: "USD"}}}
	ctrl := loaded(t, api)

	amount := decimal.RequireFromString("1500.50")
	require.NoError(t, ctrl.SavePayment(context.Background(), 1, &amount, "KES"))

	require.Len(t, api.patches, 1)
	require.Equal(t, amount, api.patches[0]["payment_amount"])
	require.Equal(t, "KES", api.patches[0]["payment_currency"])

	got, _ := ctrl.Find(1)
	require.True(t, got.PaymentAmount.Equal(amount))
	require.Equal(t, "KES", got.PaymentCurrency)
}

func TestController_SavePayment_NilAmountClears(t *testing.T) {
	api := &fakeAPI{list: []projects.Project{
		{ID: 1, PaymentAmount: decimal.RequireFromString("100"), PaymentCurrency: "EUR"},
	}}
	ctrl := loaded(t, api)

	require.NoError(t, ctrl.SavePayment(context.Background(), 1, nil, ""))

	require.Len(t, api.patches, 1)
	require.Nil(t, api.patches[0]["payment_amount"])
	require.Equal(t, "USD", api.patches[0]["payment_currency"])

	got, _ := ctrl.Find(1)
	require.True(t, got.PaymentAmount.IsZero())
	require.Equal(t, "USD", got.PaymentCurrency)
}

func TestController_SavePayment_FailureRollsBack(t *testing.T) {
	original := decimal.RequireFromString("100")
	api := &fakeAPI{
		list:     []projects.Project{{ID: 1, PaymentAmount: original, PaymentCurrency: "USD"}},
		patchErr: errServer,
	}
	ctrl := loaded(t, api)

	amount := decimal.RequireFromString("999")
	err := ctrl.SavePayment(context.Background(), 1, &amount, "GBP")
	require.Error(t, err)

	got, _ := ctrl.Find(1)
	require.True(t, got.PaymentAmount.Equal(original))
	require.Equal(t, "USD", got.PaymentCurrency)
	require.Equal(t, "Failed to update payment.", ctrl.Err())
}

func TestController_SavePaymentStatus_FailureRollsBack(t *testing.T) {
	api := &fakeAPI{
		list:     []projects.Project{{ID: 1, PaymentStatus: projects.PaymentUnpaid}},
		patchErr: errServer,
	}
	ctrl := loaded(t, api)

	err := ctrl.SavePaymentStatus(context.Background(), 1, projects.PaymentPaid)
	require.Error(t, err)

	got, _ := ctrl.Find(1)
	require.Equal(t, projects.PaymentUnpaid, got.PaymentStatus)
	require.Equal(t, "Failed to update payment status.", ctrl.Err())
}

func TestController_ConfirmDelete_FailureRestoresCollection(t *testing.T) {
	api := &fakeAPI{
		list:      []projects.Project{{ID: 1}, {ID: 2}, {ID: 3}},
		deleteErr: errServer,
	}
	ctrl := loaded(t, api)

	require.True(t, ctrl.RequestDelete(2))
	err := ctrl.ConfirmDelete(context.Background(), 2)
	require.Error(t, err)

	items := ctrl.Items()
	require.Equal(t, 3, len(items))
	require.Equal(t, int64(2), items[1].ID)
	require.Equal(t, "Failed to delete project.", ctrl.Err())
}

func TestController_Visible_SearchMatchesClientName(t *testing.T) {
	api := &fakeAPI{
		list: []projects.Project{
			{ID: 1, Title: "Website", Client: 7},
			{ID: 2, Title: "App", Client: 8},
		},
		clients: []projects.ClientRef{
			{ID: 7, Name: "Acme Inc."},
			{ID: 8, Name: "Globex"},
		},
	}
	ctrl := loaded(t, api)

	visible := ctrl.Visible(projects.TabAll, "acme")
	require.Len(t, visible, 1)
	require.Equal(t, int64(1), visible[0].ID)
}
