package handlers

import (
	"github.com/GregMSThompson/ledgerpro/internal/response"
)

type Deps struct {
	ResponseHandler response.ResponseHandler
	IdentitySvc     identityService
	LedgerSvc       ledgerService
	AccountSvc      accountService
	GoalSvc         goalService
	ReminderSvc     reminderService
	SyncSvc         syncService
}
