package twitchirc

import (
	"errors"
	"strings"
)

var errEmptyLine = errors.New("empty irc line")

// message is a single parsed IRC line in Twitch's tagged format:
//
//	@badges=moderator/1 :nick!user@host PRIVMSG #channel :hello
type message struct {
	Tags    map[string]string
	Prefix  string
	Command string
	Params  []string
}

func parseLine(raw string) (message, error) {
	line := strings.TrimRight(raw, "\r\n")
	if line == "" {
		return message{}, errEmptyLine
	}

	msg := message{Tags: map[string]string{}}

	if strings.HasPrefix(line, "@") {
		rawTags, rest, found := strings.Cut(line[1:], " ")
		if !found {
			return message{}, errors.New("irc line has tags but no command")
		}
		for _, tag := range strings.Split(rawTags, ";") {
			key, value, _ := strings.Cut(tag, "=")
			msg.Tags[key] = value
		}
		line = rest
	}

	if strings.HasPrefix(line, ":") {
		prefix, rest, found := strings.Cut(line[1:], " ")
		if !found {
			return message{}, errors.New("irc line has prefix but no command")
		}
		msg.Prefix = prefix
		line = rest
	}

	// Everything after the first " :" is a single trailing parameter.
	head, trailing, hasTrailing := strings.Cut(line, " :")
	parts := strings.Fields(head)
	if len(parts) == 0 {
		return message{}, errors.New("irc line has no command")
	}

	msg.Command = parts[0]
	msg.Params = parts[1:]
	if hasTrailing {
		msg.Params = append(msg.Params, trailing)
	}

	return msg, nil
}

// Nick extracts the sender nick from a nick!user@host prefix.
func (m message) Nick() string {
	nick, _, _ := strings.Cut(m.Prefix, "!")
	return nick
}

// Channel returns the target channel of a PRIVMSG, or "".
func (m message) Channel() string {
	if m.Command != "PRIVMSG" || len(m.Params) < 1 {
		return ""
	}
	return m.Params[0]
}

// Text returns the trailing text of a PRIVMSG, or "".
func (m message) Text() string {
	if m.Command != "PRIVMSG" || len(m.Params) < 2 {
		return ""
	}
	return m.Params[len(m.Params)-1]
}

// IsModerator reports whether the sender carries a moderator or
// broadcaster badge.
func (m message) IsModerator() bool {
	badges := m.Tags["badges"]
	for _, badge := range strings.Split(badges, ",") {
		name, _, _ := strings.Cut(badge, "/")
		if name == "moderator" || name == "broadcaster" {
			return true
		}
	}
	return false
}

// DisplayName returns the display-name tag, falling back to the prefix nick.
func (m message) DisplayName() string {
	if name := m.Tags["display-name"]; name != "" {
		return name
	}
	return m.Nick()
}

// UserID returns the user-id tag, falling back to the prefix nick.
func (m message) UserID() string {
	if id := m.Tags["user-id"]; id != "" {
		return id
	}
	return m.Nick()
}
