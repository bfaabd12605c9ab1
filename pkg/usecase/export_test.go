package usecase

// Export unexported functions for testing
var (
	CreateOrUpdatePublishTableForTest = createOrUpdatePublishTable
)
