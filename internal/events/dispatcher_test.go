package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_FansOutToEveryPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := NewMockPublisher(ctrl)
	second := NewMockPublisher(ctrl)
	evt := New(BidSubmitted, "auc1", "buyer1", map[string]any{"amount": "700"})

	first.EXPECT().Publish(gomock.Any(), evt).Return(nil)
	second.EXPECT().Publish(gomock.Any(), evt).Return(nil)

	d := NewDispatcher(time.Second, first, second)
	d.Notify(context.Background(), evt)
	d.Wait()
}

func TestDispatcher_FailuresAreReportedNotReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broken := NewMockPublisher(ctrl)
	broken.EXPECT().Name().Return("broken").AnyTimes()
	broken.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	d := NewDispatcher(time.Second, broken)

	var mu sync.Mutex
	var failed []string
	d.OnFailure(func(publisher string, _ Event, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, publisher+": "+err.Error())
	})

	d.Notify(context.Background(), New(DealCreated, "deal1", "seller1", nil))
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"broken: connection refused"}, failed)
}

func TestDispatcher_CancelledRequestStillDelivers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := NewMockPublisher(ctrl)
	p.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ Event) error {
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDispatcher(time.Second, p)
	d.OnFailure(func(string, Event, error) { t.Error("delivery should not see the request cancellation") })
	d.Notify(ctx, New(AuctionCreated, "auc1", "seller1", nil))
	d.Wait()
}

func TestDispatcher_CloseClosesPublishers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ok := NewMockPublisher(ctrl)
	bad := NewMockPublisher(ctrl)
	ok.EXPECT().Close().Return(nil)
	bad.EXPECT().Close().Return(errors.New("already closed"))

	err := NewDispatcher(0, ok, bad).Close()
	require.ErrorContains(t, err, "already closed")
}

func TestEventEncode(t *testing.T) {
	evt := New(BidAccepted, "bid1", "seller1", map[string]any{"target": "auction"})
	data, err := evt.Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "bid.accepted", decoded["type"])
	require.Equal(t, "bid1", decoded["aggregate_id"])
}

func TestLogPublisher(t *testing.T) {
	var p LogPublisher
	require.Equal(t, "log", p.Name())
	require.NoError(t, p.Publish(context.Background(), New(InventoryCreated, "item1", "seller1", nil)))
	require.NoError(t, p.Close())
	Discard{}.Notify(context.Background(), Event{})
}
