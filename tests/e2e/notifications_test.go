package e2e

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func Test_Notifications_CreatedOnApproval_MarkViewed(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	owner := defaultLogin(t, c, ctx)
	admin := adminLogin(t, c, ctx)

	dest := "E2E-Notify-" + time.Now().Format("150405.000000000")
	order := createOrder(t, c, ctx, owner.AccessToken, dest)

	//adminが承認→所有者に通知が入る
	updateStatus(t, c, ctx, admin.AccessToken, order.ID, "approved", http.StatusOK)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/notifications", owner.AccessToken, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var created *Notification
	for _, n := range mustDecodeNotifications(t, body) {
		if n.OrderID == order.ID {
			created = &n
			break
		}
	}
	if created == nil {
		t.Fatalf("notification for order %d not found: body=%s", order.ID, string(body))
	}
	if created.Viewed {
		t.Fatalf("notification should start unviewed: %+v", created)
	}
	want := fmt.Sprintf("Seu pedido #%d foi approved.", order.ID)
	if created.NotificationMessage != want {
		t.Fatalf("message mismatch want=%q got=%q", want, created.NotificationMessage)
	}

	//他人（admin）が既読化しようとすると404
	resp, body = c.doJSON(ctx, t, http.MethodPatch, "/notifications/"+toStr(created.ID)+"/viewed", admin.AccessToken, nil)
	requireStatus(t, resp, http.StatusNotFound, body)

	//所有者は既読化できる
	resp, body = c.doJSON(ctx, t, http.MethodPatch, "/notifications/"+toStr(created.ID)+"/viewed", owner.AccessToken, nil)
	requireStatus(t, resp, http.StatusOK, body)

	//一覧でviewed=trueになっていること
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/notifications", owner.AccessToken, nil)
	requireStatus(t, resp, http.StatusOK, body)
	for _, n := range mustDecodeNotifications(t, body) {
		if n.ID == created.ID && !n.Viewed {
			t.Fatalf("notification should be viewed: %+v", n)
		}
	}

	//後始末
	resp, body = c.doJSON(ctx, t, http.MethodDelete, "/orders/"+toStr(order.ID), owner.AccessToken, nil)
	requireStatus(t, resp, http.StatusOK, body)
}

func Test_Notifications_Guest401(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/notifications", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}
