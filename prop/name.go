package prop

import (
	"github.com/ghettovoice/govcard/internal/grammar"
	"github.com/ghettovoice/govcard/internal/util"
	"github.com/ghettovoice/govcard/value"
)

// Name is a canonical (uppercase) property name.
type Name string

// Registered property names.
const (
	Begin        Name = "BEGIN"
	End          Name = "END"
	Version      Name = "VERSION"
	Source       Name = "SOURCE"
	Kind         Name = "KIND"
	XML          Name = "XML"
	Fn           Name = "FN"
	N            Name = "N"
	Nickname     Name = "NICKNAME"
	Photo        Name = "PHOTO"
	Bday         Name = "BDAY"
	Anniversary  Name = "ANNIVERSARY"
	Gender       Name = "GENDER"
	Adr          Name = "ADR"
	Tel          Name = "TEL"
	Email        Name = "EMAIL"
	Impp         Name = "IMPP"
	Lang         Name = "LANG"
	TZ           Name = "TZ"
	Geo          Name = "GEO"
	Title        Name = "TITLE"
	Role         Name = "ROLE"
	Logo         Name = "LOGO"
	Org          Name = "ORG"
	Member       Name = "MEMBER"
	Related      Name = "RELATED"
	Categories   Name = "CATEGORIES"
	Note         Name = "NOTE"
	Prodid       Name = "PRODID"
	Rev          Name = "REV"
	Sound        Name = "SOUND"
	UID          Name = "UID"
	ClientPIDMap Name = "CLIENTPIDMAP"
	URL          Name = "URL"
	Key          Name = "KEY"
	FbURL        Name = "FBURL"
	CalAdrURI    Name = "CALADRURI"
	CalURI       Name = "CALURI"
	Birthplace   Name = "BIRTHPLACE"
	Deathplace   Name = "DEATHPLACE"
	Deathdate    Name = "DEATHDATE"
	Expertise    Name = "EXPERTISE"
	Hobby        Name = "HOBBY"
	Interest     Name = "INTEREST"
	OrgDirectory Name = "ORG-DIRECTORY"
	ContactURI   Name = "CONTACT-URI"
)

// Cardinality restricts how many instances of a property a card may hold.
type Cardinality uint8

const (
	// Many allows any number of instances.
	Many Cardinality = iota
	// AtMostOne allows zero or one instance.
	AtMostOne
	// ExactlyOne requires a single instance.
	ExactlyOne
)

// structured marks how a TEXT-typed value is shaped.
type structured uint8

const (
	plainText structured = iota
	commaList
	semiList
	nameComps
	addrComps
)

type nameSpec struct {
	card    Cardinality
	def     value.Kind
	allowed []value.Kind
	shape   structured
	params  []ParamName
}

var (
	kindsDateAndOrTime = []value.Kind{
		value.KindDateAndOrTime, value.KindDateTime, value.KindDate, value.KindTime, value.KindText,
	}
	kindsURIOrText = []value.Kind{value.KindURI, value.KindText}

	paramsCommon = []ParamName{ParamAltID, ParamLanguage, ParamPID, ParamPref, ParamType, ParamValue}
	paramsMedia  = []ParamName{ParamAltID, ParamMediaType, ParamPID, ParamPref, ParamType, ParamValue}
)

var names = map[Name]nameSpec{
	Begin:   {card: ExactlyOne, def: value.KindText, params: []ParamName{}},
	End:     {card: ExactlyOne, def: value.KindText, params: []ParamName{}},
	Version: {card: ExactlyOne, def: value.KindText, params: []ParamName{ParamValue}},
	Source:  {def: value.KindURI, params: []ParamName{ParamAltID, ParamMediaType, ParamPID, ParamPref, ParamValue}},
	Kind:    {card: AtMostOne, def: value.KindText, params: []ParamName{ParamValue}},
	XML:     {def: value.KindText, params: []ParamName{ParamAltID, ParamValue}},
	Fn:      {card: ExactlyOne, def: value.KindText, params: paramsCommon},
	N: {card: AtMostOne, def: value.KindText, shape: nameComps,
		params: []ParamName{ParamAltID, ParamLanguage, ParamSortAs, ParamValue}},
	Nickname: {def: value.KindText, shape: commaList, params: paramsCommon},
	Photo:    {def: value.KindURI, params: paramsMedia},
	Bday: {card: AtMostOne, def: value.KindDateAndOrTime, allowed: kindsDateAndOrTime,
		params: []ParamName{ParamAltID, ParamCalscale, ParamLanguage, ParamValue}},
	Anniversary: {card: AtMostOne, def: value.KindDateAndOrTime, allowed: kindsDateAndOrTime,
		params: []ParamName{ParamAltID, ParamCalscale, ParamValue}},
	Gender: {card: AtMostOne, def: value.KindText, shape: semiList,
		params: []ParamName{ParamValue}},
	Adr: {def: value.KindText, shape: addrComps,
		params: []ParamName{ParamAltID, ParamCC, ParamGeo, ParamIndex, ParamLabel, ParamLanguage,
			ParamPID, ParamPref, ParamType, ParamTZ, ParamValue}},
	Tel: {def: value.KindURI, allowed: kindsURIOrText,
		params: []ParamName{ParamAltID, ParamMediaType, ParamPID, ParamPref, ParamType, ParamValue}},
	Email:   {def: value.KindText, params: []ParamName{ParamAltID, ParamPID, ParamPref, ParamType, ParamValue}},
	Impp:    {def: value.KindURI, params: paramsMedia},
	Lang:    {def: value.KindLanguageTag, params: []ParamName{ParamAltID, ParamPID, ParamPref, ParamType, ParamValue}},
	TZ:      {def: value.KindText, allowed: []value.Kind{value.KindText, value.KindURI, value.KindUTCOffset}, params: paramsMedia},
	Geo:     {def: value.KindURI, params: paramsMedia},
	Title:   {def: value.KindText, params: paramsCommon},
	Role:    {def: value.KindText, params: paramsCommon},
	Logo:    {def: value.KindURI, params: []ParamName{ParamAltID, ParamLanguage, ParamMediaType, ParamPID, ParamPref, ParamType, ParamValue}},
	Org: {def: value.KindText, shape: semiList,
		params: []ParamName{ParamAltID, ParamLanguage, ParamPID, ParamPref, ParamSortAs, ParamType, ParamValue}},
	Member: {def: value.KindURI, params: []ParamName{ParamAltID, ParamMediaType, ParamPID, ParamPref, ParamValue}},
	Related: {def: value.KindURI, allowed: kindsURIOrText,
		params: []ParamName{ParamAltID, ParamLanguage, ParamMediaType, ParamPID, ParamPref, ParamType, ParamValue}},
	Categories: {def: value.KindText, shape: commaList,
		params: []ParamName{ParamAltID, ParamPID, ParamPref, ParamType, ParamValue}},
	Note:         {def: value.KindText, params: paramsCommon},
	Prodid:       {card: AtMostOne, def: value.KindText, params: []ParamName{ParamValue}},
	Rev:          {card: AtMostOne, def: value.KindTimestamp, params: []ParamName{ParamValue}},
	Sound:        {def: value.KindURI, params: []ParamName{ParamAltID, ParamLanguage, ParamMediaType, ParamPID, ParamPref, ParamType, ParamValue}},
	UID:          {card: AtMostOne, def: value.KindURI, allowed: kindsURIOrText, params: []ParamName{ParamValue}},
	ClientPIDMap: {def: value.KindText, shape: semiList, params: []ParamName{}},
	URL:          {def: value.KindURI, params: paramsMedia},
	Key:          {def: value.KindURI, allowed: kindsURIOrText, params: paramsMedia},
	FbURL:        {def: value.KindURI, params: paramsMedia},
	CalAdrURI:    {def: value.KindURI, params: paramsMedia},
	CalURI:       {def: value.KindURI, params: paramsMedia},
	Birthplace: {card: AtMostOne, def: value.KindText, allowed: kindsURIOrText,
		params: []ParamName{ParamAltID, ParamLanguage, ParamValue}},
	Deathplace: {card: AtMostOne, def: value.KindText, allowed: kindsURIOrText,
		params: []ParamName{ParamAltID, ParamLanguage, ParamValue}},
	Deathdate: {card: AtMostOne, def: value.KindDateAndOrTime, allowed: kindsDateAndOrTime,
		params: []ParamName{ParamAltID, ParamCalscale, ParamLanguage, ParamValue}},
	Expertise: {def: value.KindText,
		params: []ParamName{ParamAltID, ParamIndex, ParamLanguage, ParamLevel, ParamPID, ParamPref, ParamType, ParamValue}},
	Hobby: {def: value.KindText,
		params: []ParamName{ParamAltID, ParamIndex, ParamLanguage, ParamLevel, ParamPID, ParamPref, ParamType, ParamValue}},
	Interest: {def: value.KindText,
		params: []ParamName{ParamAltID, ParamIndex, ParamLanguage, ParamLevel, ParamPID, ParamPref, ParamType, ParamValue}},
	OrgDirectory: {def: value.KindText,
		params: []ParamName{ParamAltID, ParamIndex, ParamLanguage, ParamPID, ParamPref, ParamType, ParamValue}},
	ContactURI: {def: value.KindURI,
		params: []ParamName{ParamAltID, ParamMediaType, ParamPref, ParamValue}},
}

// ParseName canonicalizes s into a property Name.
// Unregistered tokens are allowed as extension names.
func ParseName[T ~string](s T) (Name, bool) {
	n := Name(util.UCase(string(s)))
	if !grammar.IsName(string(n)) {
		return "", false
	}
	return n, true
}

// CanonicName returns the canonical uppercase form of the name.
func (n Name) CanonicName() Name { return util.UCase(n) }

// IsExtension reports whether the name is not registered: an x-name or
// an unregistered iana-token.
func (n Name) IsExtension() bool {
	_, ok := names[n.CanonicName()]
	return !ok
}

// IsXName reports whether the name carries the "x-" extension prefix.
func (n Name) IsXName() bool { return grammar.IsXName(string(n)) }

// Cardinality returns how many instances of the property a card may
// hold. Extension properties are unconstrained.
func (n Name) Cardinality() Cardinality { return names[n.CanonicName()].card }

// DefaultKind returns the value kind assumed without a VALUE parameter.
// Extension properties default to text.
func (n Name) DefaultKind() value.Kind {
	spec, ok := names[n.CanonicName()]
	if !ok {
		return value.KindText
	}
	return spec.def
}

// AllowsKind reports whether an explicit VALUE parameter may select
// kind for this property. Extension properties allow every kind.
func (n Name) AllowsKind(kind value.Kind) bool {
	spec, ok := names[n.CanonicName()]
	if !ok {
		return true
	}
	if kind == spec.def {
		return true
	}
	for _, k := range spec.allowed {
		if k == kind {
			return true
		}
	}
	return false
}

// AllowsParam reports whether the parameter is registered for this
// property. Extension properties and extension parameters are always
// allowed.
func (n Name) AllowsParam(pn ParamName) bool {
	spec, ok := names[n.CanonicName()]
	if !ok || pn.IsExtension() {
		return true
	}
	for _, p := range spec.params {
		if p == pn {
			return true
		}
	}
	return false
}

func (n Name) shape() structured { return names[n.CanonicName()].shape }
