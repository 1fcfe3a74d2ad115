// Package notifier fans human-readable alerts out to the configured chat backends.
// Delivery is fire-and-forget: notifiers log their failures and never return them.
package notifier

import (
	"github.com/sirupsen/logrus"

	"github.com/ladderbot/ladderbot/pkg/util"
)

type Notifier interface {
	Notify(obj interface{}, args ...interface{})
}

type NullNotifier struct{}

func (n *NullNotifier) Notify(obj interface{}, args ...interface{}) {}

type Notifiability struct {
	notifiers []Notifier
}

// AddNotifier adds the notifier that implements the Notifier interface.
func (m *Notifiability) AddNotifier(notifier Notifier) {
	m.notifiers = append(m.notifiers, notifier)
}

func (m *Notifiability) Notify(obj interface{}, args ...interface{}) {
	if str, ok := obj.(string); ok {
		simpleArgs := util.FilterSimpleArgs(args)
		logrus.Infof(str, simpleArgs...)
	}

	for _, n := range m.notifiers {
		n.Notify(obj, args...)
	}
}
