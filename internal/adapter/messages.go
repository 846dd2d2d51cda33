package adapter

// 사용자에게 노출되는 메시지 문구 모음
const (
	MsgNotRegistered      = "You are not registered yet. Use `/register` with your Last.fm username first."
	MsgRegisterSuccess    = "Registered! Your Last.fm account is now linked."
	MsgRegisterOverwrite  = "Updated! Your Last.fm account link has been replaced."
	MsgRegisterUsage      = "Please provide your Last.fm username."
	MsgNoRecentTracks     = "No scrobbles found for this account yet."
	MsgNoTopAlbums        = "Not enough listening history to build a chart for this period."
	MsgCommandFailed      = "Something went wrong while talking to the music services. Please try again."
	MsgCoverNotFoundTitle = "No cover art found"
	MsgCountdownDone      = "🎉 Go!"
	MsgUnknownCommand     = "Unknown command."
)
