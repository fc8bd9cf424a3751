package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Label returns a human-readable rendering of id, the way a diagnostic
// message would show it. It never fails: unresolvable or too-deep
// references degrade to "?" / "...".
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if id == NoTypeID || in == nil {
		return "?"
	}
	if depth > 12 {
		return "..."
	}
	t, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch t.Kind {
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindNever:
		return "never"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBigInt:
		return "bigint"
	case KindESSymbol:
		return "symbol"
	case KindObjectIntrinsic:
		return "object"
	case KindLiteralString:
		return strconv.Quote(in.Atoms.Lookup(t.Name))
	case KindLiteralNumber:
		v, _ := in.LiteralNumberValue(id)
		return strconv.FormatFloat(v, 'g', -1, 64)
	case KindLiteralBoolean:
		v, _ := in.LiteralBooleanValue(id)
		return strconv.FormatBool(v)
	case KindLiteralBigInt:
		return in.Atoms.Lookup(t.Name) + "n"
	case KindArray:
		return labelDepth(in, t.Elem, depth+1) + "[]"
	case KindKeyof:
		return "keyof " + labelDepth(in, t.Elem, depth+1)
	case KindReadonly:
		return "readonly " + labelDepth(in, t.Elem, depth+1)
	case KindFresh:
		return labelDepth(in, t.Elem, depth+1)
	case KindObject:
		return labelObject(in, id, depth)
	case KindFunction:
		return labelFunction(in, id, depth)
	case KindUnion:
		info, _ := in.UnionInfoOf(id)
		parts := make([]string, len(info.Members))
		for i, m := range info.Members {
			parts[i] = labelDepth(in, m, depth+1)
		}
		return strings.Join(parts, " | ")
	case KindIntersection:
		info, _ := in.IntersectionInfoOf(id)
		parts := make([]string, len(info.Members))
		for i, m := range info.Members {
			parts[i] = labelDepth(in, m, depth+1)
		}
		return strings.Join(parts, " & ")
	case KindTuple:
		info, _ := in.TupleInfoOf(id)
		parts := make([]string, len(info.Elements))
		for i, e := range info.Elements {
			s := labelDepth(in, e.Type, depth+1)
			if e.Rest {
				s = "..." + s
			}
			if e.Optional {
				s += "?"
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTypeParameter:
		info, _ := in.TypeParamInfoOf(id)
		return in.Atoms.Lookup(info.Name)
	case KindTypeApplication:
		info, _ := in.ApplicationInfoOf(id)
		parts := make([]string, len(info.Args))
		for i, a := range info.Args {
			parts[i] = labelDepth(in, a, depth+1)
		}
		return labelDepth(in, info.Target, depth+1) + "<" + strings.Join(parts, ", ") + ">"
	case KindLazyReference:
		info, _ := in.LazyInfoOf(id)
		return in.Atoms.Lookup(info.Name)
	case KindConditional:
		info, _ := in.ConditionalInfoOf(id)
		return fmt.Sprintf("%s extends %s ? %s : %s",
			labelDepth(in, info.Check, depth+1), labelDepth(in, info.Extends, depth+1),
			labelDepth(in, info.True, depth+1), labelDepth(in, info.False, depth+1))
	case KindMapped:
		info, _ := in.MappedInfoOf(id)
		return fmt.Sprintf("{ [%s in %s]: %s }",
			labelDepth(in, info.Param, depth+1), labelDepth(in, info.Constraint, depth+1), labelDepth(in, info.Template, depth+1))
	case KindIndexedAccess:
		info, _ := in.IndexedAccessInfoOf(id)
		return labelDepth(in, info.Object, depth+1) + "[" + labelDepth(in, info.Index, depth+1) + "]"
	case KindTemplateLiteral:
		info, _ := in.TemplateLiteralInfoOf(id)
		var b strings.Builder
		b.WriteByte('`')
		for i, q := range info.Quasis {
			b.WriteString(q)
			if i < len(info.Types) {
				b.WriteString("${")
				b.WriteString(labelDepth(in, info.Types[i], depth+1))
				b.WriteString("}")
			}
		}
		b.WriteByte('`')
		return b.String()
	case KindUniqueSymbol:
		info, _ := in.UniqueSymbolInfoOf(id)
		return "unique symbol(" + in.Atoms.Lookup(info.Name) + ")"
	case KindEnumMember:
		info, _ := in.EnumMemberInfoOf(id)
		return in.Atoms.Lookup(info.EnumName) + "." + in.Atoms.Lookup(info.MemberName)
	default:
		return "?"
	}
}

func labelObject(in *Interner, id TypeID, depth int) string {
	info, _ := in.ObjectInfoOf(id)
	if len(info.Properties) == 0 && len(info.CallSignatures) == 0 && len(info.ConstructSigs) == 0 && len(info.IndexSignatures) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(info.Properties))
	for _, p := range info.Properties {
		s := in.Atoms.Lookup(p.Name)
		if p.Optional {
			s += "?"
		}
		s += ": " + labelDepth(in, p.Type, depth+1)
		if p.Readonly {
			s = "readonly " + s
		}
		parts = append(parts, s)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func labelFunction(in *Interner, id TypeID, depth int) string {
	sig, _ := in.SignatureOf(id)
	parts := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		s := in.Atoms.Lookup(p.Name)
		if p.Optional {
			s += "?"
		}
		s += ": " + labelDepth(in, p.Type, depth+1)
		if p.Rest {
			s = "..." + s
		}
		parts[i] = s
	}
	prefix := ""
	if sig.IsConstructor {
		prefix = "new "
	}
	return prefix + "(" + strings.Join(parts, ", ") + ") => " + labelDepth(in, sig.ReturnType, depth+1)
}
