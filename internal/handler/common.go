package handler // handler defines the HTTP handlers for the booking API

// The API reports failures with machine-readable message codes carried
// in a {"message": CODE} body.  The codes are part of the public
// contract and are matched by the clients, so they are centralized
// here.
const (
	msgSuccess                 = "SUCCESS"
	msgKeyError                = "KEY_ERROR"
	msgInvalidDate             = "INVALID_DATE"
	msgExceedQuantity          = "EXCEED THE QUANTITY"
	msgAlreadyReserved         = "ALREADY_RESERVED"
	msgInvalidRooms            = "INVALID_ROOMS"
	msgDoesNotExistRoom        = "DOES_NOT_EXIST_ROOM"
	msgDoesNotExistReservation = "DOES_NOT_EXIST_RESERVATION"
	msgMultipleReservation     = "MULTIPLE_RESERVATION"
	msgEmailNotValid           = "EMAIL_NOT_VALID"
	msgPasswordNotValid        = "PASSWORD_NOT_VALID"
	msgDuplicateEmail          = "DUPLICATE_EMAIL_ERROR"
	msgInvalidUser             = "INVALID_USER"
	msgInvalidPassword         = "INVALID_PASSWORD"
	msgUnactivatedUser         = "UNACTIVATED_USER"
	msgInvalidToken            = "INVALID_TOKEN"
	msgDatabaseError           = "DATABASE_ERROR"
)
