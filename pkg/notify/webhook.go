// Package notify delivers task events to the tenant's configured
// channels: an outbound webhook and, for assignments, email. Delivery is
// best-effort; a failed notification never fails the API call that
// produced it.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/pkg/config"
	"github.com/sitegrid-labs/sitegrid/pkg/constants"
	"github.com/sitegrid-labs/sitegrid/pkg/monitor"
)

// Event is the payload posted to the webhook endpoint.
type Event struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // task.created, task.status_changed, task.assigned, task.dependency_added, task.deleted
	TenantID  uint      `json:"tenantId"`
	ProjectID uint      `json:"projectId"`
	TaskID    uint      `json:"taskId"`
	Detail    string    `json:"detail"`
	At        time.Time `json:"at"`
}

type Notifier struct {
	client *req.Client
	url    string
	secret string
}

func NewNotifier() *Notifier {
	conf := config.GetConfig()
	timeout := conf.Webhook.Timeout
	if timeout <= 0 {
		timeout = 5
	}
	return &Notifier{
		client: req.C().
			SetTimeout(time.Duration(timeout) * time.Second).
			SetCommonRetryCount(2),
		url:    conf.Webhook.URL,
		secret: conf.Webhook.Secret,
	}
}

// TaskEvent posts an event to the configured webhook in the background.
// With no webhook configured it is a no-op.
func (n *Notifier) TaskEvent(kind string, tenantID, projectID, taskID uint, detail string) {
	if n == nil || n.url == "" {
		return
	}
	event := Event{
		ID:        uuid.New().String(),
		Kind:      kind,
		TenantID:  tenantID,
		ProjectID: projectID,
		TaskID:    taskID,
		Detail:    detail,
		At:        time.Now(),
	}
	go n.deliver(event)
}

func (n *Notifier) deliver(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader(constants.WebhookSignatureHeader, n.secret).
		SetBodyJsonMarshal(event).
		Post(n.url)
	if err != nil {
		monitor.WebhookDeliveries.WithLabelValues("error").Inc()
		klog.Errorf("webhook delivery failed, event: %s, err: %v", event.ID, err)
		return
	}
	if resp.IsErrorState() {
		monitor.WebhookDeliveries.WithLabelValues("rejected").Inc()
		klog.Warningf("webhook rejected, event: %s, status: %s", event.ID, resp.Status)
		return
	}
	monitor.WebhookDeliveries.WithLabelValues("ok").Inc()
}
