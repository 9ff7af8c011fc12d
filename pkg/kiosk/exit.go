package kiosk

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/kiosk/pkg/storage"
)

// Navigator performs a full-page navigation of the kiosk tab.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

// Exit leaves kiosk mode: it clears every persisted kiosk key and navigates
// to the site home without the kiosk flag. The navigation happens even if
// clearing fails.
func Exit(ctx context.Context, store storage.Store, nav Navigator, site *Site) error {
	var errs []error

	if err := storage.Clear(store); err != nil {
		errs = append(errs, fmt.Errorf("failed to clear kiosk state: %w", err))
	}
	if err := nav.Navigate(ctx, site.HomeURL()); err != nil {
		errs = append(errs, fmt.Errorf("failed to navigate home: %w", err))
	}

	return errors.Join(errs...)
}
