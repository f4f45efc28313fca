package servicebus

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

// NewServiceBus creates the Azure Service Bus client used for outcome event
// fan-out. Authentication goes through the default Azure credential chain, so
// managed identity works in production and `az login` works locally.
func NewServiceBus(_ context.Context, namespace string) (*azservicebus.Client, error) {
	if namespace == "" {
		return nil, fmt.Errorf("service bus namespace is empty")
	}
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	client, err := azservicebus.NewClient(namespace, credential, nil)
	if err != nil {
		return nil, err
	}
	return client, nil
}
