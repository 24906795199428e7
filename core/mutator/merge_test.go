package mutator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeAddsImportsAndMissingHandlers(t *testing.T) {
	source := `import { db } from '@/lib/db';
import { NextResponse } from 'next/server';

export async function GET() {
  return NextResponse.json(await db.all());
}

export async function POST() {
  return new Response(null);
}
`
	target := `import { NextResponse } from 'next/server';

export async function POST() {
  return NextResponse.json({});
}
`
	want := `import { NextResponse } from 'next/server';
import { db } from '@/lib/db';

export async function POST() {
  return NextResponse.json({});
}

export async function GET() {
  return NextResponse.json(await db.all());
}
`
	assert.Equal(t, want, Merge(source, target))
}

func TestMergeIntoEmptyTarget(t *testing.T) {
	source := "import x from 'x';\nexport const GET = () => x;\n"
	assert.Equal(t, "import x from 'x';\n\nexport const GET = () => x;\n", Merge(source, ""))
}

func TestMergeMultiLineImport(t *testing.T) {
	source := "import {\n  a,\n  b,\n} from 'lib';\n\nexport function PUT() {}\n"
	target := "export function GET() {}\n"
	want := "import {\n  a,\n  b,\n} from 'lib';\n\nexport function GET() {}\n\nexport function PUT() {}\n"
	assert.Equal(t, want, Merge(source, target))
}

func TestMergeNothingToAdd(t *testing.T) {
	target := "export function GET() {}\n"
	assert.Equal(t, target, Merge("export function GET() { return 1 }\n", target))
}

func TestMergeKeepsTargetMethodAfterBracelessHandler(t *testing.T) {
	source := "export const GET = withAuth(handler)\nexport const POST = async () => {\n  return Response.json({ from: 'source' });\n}\n"
	target := "export async function POST() {\n  return Response.json({ from: 'target' });\n}\n"

	merged := Merge(source, target)

	assert.Equal(t, target+"\nexport const GET = withAuth(handler)\n", merged)
	assert.Equal(t, 1, strings.Count(merged, "POST"))
}
