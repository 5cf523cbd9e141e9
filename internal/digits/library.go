package digits

import "image"

type pts = []image.Point

var zero = &Template{
	Value: 0, Width: 74, Height: 113,
	On: pts{
		{37, 27}, {37, 85},
		{23, 34}, {23, 44}, {23, 54}, {23, 64}, {23, 75},
		{51, 34}, {51, 44}, {51, 54}, {51, 64}, {51, 75},
		{23, 51}, {55, 51},
	},
	Off: pts{{39, 56}, {37, 56}, {35, 56}, {33, 56}},
}

var one = &Template{
	Value: 1, Width: 74, Height: 113,
	On: pts{{40, 25}, {40, 35}, {40, 45}, {40, 55}, {40, 65}, {40, 75}},
	// Keeps a 7 from reading as a 1.
	Off: pts{{25, 25}},
}

var two = &Template{
	Value: 2, Width: 72, Height: 111,
	On: pts{
		{23, 90}, {33, 90}, {44, 90}, {52, 90},
		{29, 81}, {35, 75}, {41, 71}, {47, 64}, {52, 58}, {53, 49},
		{50, 43}, {47, 39}, {39, 36}, {32, 38},
	},
	Off: pts{{23, 51}},
}

var three = &Template{
	Value: 3, Width: 74, Height: 113,
	On: pts{
		{37, 27}, {34, 81}, {37, 85},
		{45, 30},
		{23, 34}, {23, 75},
		{51, 34}, {51, 75},
		{55, 51},
	},
	Off: pts{{23, 45}, {23, 50}, {23, 55}},
}

// threeAlt catches the 3 when its wheel sits slightly lower and narrower.
var threeAlt = &Template{
	Value: 3, Width: 72, Height: 112,
	On: pts{
		{28, 40}, {34, 36}, {43, 37},
		{51, 42}, {51, 43}, {51, 44}, {51, 45}, {51, 46}, {51, 47}, {51, 48},
		{51, 49}, {51, 50}, {51, 51}, {51, 52}, {51, 53}, {51, 54},
		{50, 62}, {52, 70}, {53, 81},
		{48, 85}, {39, 88}, {30, 87}, {24, 82},
	},
	Off: pts{{23, 51}},
}

var four = &Template{
	Value: 4, Width: 74, Height: 113,
	On: pts{
		{49, 28}, {49, 38}, {49, 48}, {49, 58}, {49, 68}, {49, 78}, {49, 83},
		{58, 70}, {48, 70}, {38, 70}, {28, 70}, {24, 70},
		{29, 59}, {33, 53}, {38, 45}, {43, 37}, {45, 32},
	},
	Off: pts{{23, 51}},
}

var five = &Template{
	Value: 5, Width: 74, Height: 113,
	On: pts{
		{23, 34}, {43, 34},
		{23, 43},
		{23, 57}, {43, 57},
		{52, 71},
		{23, 83}, {43, 89},
	},
	Off: pts{{50, 45}},
}

var six = &Template{
	Value: 6, Width: 74, Height: 113,
	On: pts{
		{37, 27}, {37, 85},
		{23, 34}, {23, 55}, {23, 60}, {23, 65}, {23, 70}, {23, 75},
		{51, 75},
		{37, 56},
		{19, 60},
	},
	Off: pts{{51, 40}},
}

var seven = &Template{
	Value: 7, Width: 72, Height: 111,
	On: pts{
		{30, 22}, {30, 24}, {47, 24},
		{48, 37},
		{44, 50},
		{42, 58},
		{41, 66},
		{38, 77},
	},
}

var eight = &Template{
	Value: 8, Width: 74, Height: 113,
	On: pts{
		{35, 29},
		{37, 27}, {37, 85},
		{22, 34}, {22, 44}, {25, 54}, {25, 64}, {20, 75},
		{56, 34}, {63, 75},
		{37, 50}, {39, 50}, {42, 50},
		{37, 55}, {39, 55}, {42, 55},
		{37, 60}, {39, 60}, {42, 60},
		{50, 45},
		{25, 51},
		{56, 40}, {58, 44}, {56, 48}, {56, 54},
	},
}

var nine = &Template{
	Value: 9, Width: 72, Height: 111,
	On: pts{
		{40, 33},
		{50, 38}, {55, 43},
		{26, 47}, {55, 47},
		{52, 60}, {35, 60},
		{54, 78},
		{42, 86},
		{42, 88},
		{35, 95}, {42, 95}, {50, 95}, {55, 92}, {60, 90},
		{57, 85}, {57, 80}, {57, 79}, {57, 78}, {57, 77}, {57, 75}, {57, 75}, {57, 70}, {57, 65},
	},
	Off: pts{{20, 69}},
}

// Library is searched in order and the first match wins, so glyphs that are
// easiest to satisfy by accident come last. Do not reorder.
var Library = []*Template{
	eight,
	zero,

	two,
	three,
	threeAlt,
	six,

	nine,
	five,
	four,
	seven,

	one,
}
